//go:build integration

package main

import (
	"runtime"
	"strings"
	"testing"

	"github.com/raphi011/hk/internal/git"
)

// TestDoctor_ReportsIssues tests the diagnostic report.
//
// Scenario: Config has a hook without a command, repo has a
// non-executable hook file
// Expected: Both issues are reported
func TestDoctor_ReportsIssues(t *testing.T) {
	repo := setupTestRepo(t)
	writeHookFile(t, repo, "pre-push", "exit 0", 0o644)

	cfg := parseConfig(t, `
[hook.broken]
events = ["pre-commit"]
`)

	ctx, stdout, _ := testContext(t, cfg, repo)
	cmd := newDoctorCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"-C", repo})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("doctor command failed: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "broken") {
		t.Errorf("expected broken declaration in report, got:\n%s", out)
	}
	if !strings.Contains(out, "pre-push") {
		t.Errorf("expected non-executable hook file in report, got:\n%s", out)
	}
	if !strings.Contains(out, "hk doctor --fix") {
		t.Errorf("expected fix hint, got:\n%s", out)
	}
}

// TestDoctor_Fix tests the --fix repair.
//
// Scenario: User runs `hk doctor --fix` with a non-executable hook file
// Expected: The file becomes executable
func TestDoctor_Fix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit semantics differ on windows")
	}

	repo := setupTestRepo(t)
	path := writeHookFile(t, repo, "pre-push", "exit 0", 0o644)

	ctx, _, _ := testContext(t, parseConfig(t, ""), repo)
	cmd := newDoctorCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"-C", repo, "--fix"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("doctor command failed: %v", err)
	}

	if !git.IsExecutable(path) {
		t.Error("expected --fix to mark the hook file executable")
	}
}
