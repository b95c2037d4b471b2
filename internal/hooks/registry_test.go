//go:build !windows

package hooks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/raphi011/hk/internal/config"
	"github.com/raphi011/hk/internal/git"
	"github.com/raphi011/hk/internal/log"
)

func mustParse(t *testing.T, text string) *config.Config {
	t.Helper()
	cfg, err := config.Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return cfg
}

// setupRepo creates a git repo skeleton with a hooks dir and returns it.
func setupRepo(t *testing.T) *git.Repo {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git", "hooks"), 0o755); err != nil {
		t.Fatal(err)
	}
	repo, err := git.Find(dir)
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

// writeHook creates a hook-dir hook script with the given mode.
func writeHook(t *testing.T, repo *git.Repo, event, script string, mode os.FileMode) string {
	t.Helper()
	path := repo.HookPath(event)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), mode); err != nil {
		t.Fatal(err)
	}
	return path
}

func names(list *List) []string {
	var out []string
	for _, h := range list.Hooks() {
		out = append(out, h.Describe())
	}
	return out
}

func TestDiscover_ConfigOrder(t *testing.T) {
	cfg := mustParse(t, `
[hook.lint]
command = "make lint"
events = ["pre-commit"]

[hook.test]
command = "go test ./..."
events = ["pre-commit", "pre-push"]

[hook.notify]
command = "notify-send done"
events = ["post-merge"]
`)

	list := Discover(context.Background(), cfg, nil, "pre-commit")

	if got := names(list); !reflect.DeepEqual(got, []string{"lint", "test"}) {
		t.Errorf("expected [lint test], got %v", got)
	}
}

func TestDiscover_RedeclarationMovesToEnd(t *testing.T) {
	// Local redeclaration of def after ghi: def runs after ghi.
	global := mustParse(t, `
[hook.def]
command = "true"
events = ["pre-commit"]
`)
	local := mustParse(t, `
[hook.ghi]
command = "true"
events = ["pre-commit", "test-hook"]

[hook.def]
command = "true"
events = ["pre-commit"]
`)
	cfg := config.MergeLocal(global, local)

	list := Discover(context.Background(), cfg, nil, "pre-commit")

	if got := names(list); !reflect.DeepEqual(got, []string{"ghi", "def"}) {
		t.Errorf("expected [ghi def], got %v", got)
	}
}

func TestDiscover_HookDirHookIsLast(t *testing.T) {
	cfg := mustParse(t, `
[hook.lint]
command = "make lint"
events = ["pre-commit"]
`)
	repo := setupRepo(t)
	path := writeHook(t, repo, "pre-commit", "exit 0", 0o755)

	list := Discover(context.Background(), cfg, repo, "pre-commit")

	want := []string{"lint", path}
	if got := names(list); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !list.At(1).Anonymous() {
		t.Error("expected hook-dir hook to be anonymous")
	}
}

func TestDiscover_Deterministic(t *testing.T) {
	cfg := mustParse(t, `
[hook.a]
command = "true"
events = ["pre-commit"]

[hook.b]
command = "true"
events = ["pre-commit"]
`)
	repo := setupRepo(t)
	writeHook(t, repo, "pre-commit", "exit 0", 0o755)

	first := names(Discover(context.Background(), cfg, repo, "pre-commit"))
	for range 5 {
		if got := names(Discover(context.Background(), cfg, repo, "pre-commit")); !reflect.DeepEqual(got, first) {
			t.Fatalf("discovery not stable: %v vs %v", first, got)
		}
	}
}

func TestDiscover_SkipsNonExecutableWithAdvisory(t *testing.T) {
	cfg := config.Default()
	repo := setupRepo(t)
	writeHook(t, repo, "advisory-test-hook", "exit 0", 0o644)

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, false, false))

	list := Discover(ctx, cfg, repo, "advisory-test-hook")

	if list.Len() != 0 {
		t.Errorf("expected non-executable hook to be skipped, got %v", names(list))
	}
	if !bytes.Contains(buf.Bytes(), []byte("not executable")) {
		t.Errorf("expected advisory warning, got %q", buf.String())
	}

	// Advisory is one-time per event
	buf.Reset()
	Discover(ctx, cfg, repo, "advisory-test-hook")
	if buf.Len() != 0 {
		t.Errorf("expected no repeat advisory, got %q", buf.String())
	}
}

func TestDiscover_AdvisorySuppressed(t *testing.T) {
	cfg := mustParse(t, "[advice]\nignored_hook = false\n")
	repo := setupRepo(t)
	writeHook(t, repo, "suppressed-advisory-hook", "exit 0", 0o644)

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, false, false))

	Discover(ctx, cfg, repo, "suppressed-advisory-hook")

	if buf.Len() != 0 {
		t.Errorf("expected advisory suppressed, got %q", buf.String())
	}
}

func TestDiscover_EmptyEventPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty event name")
		}
	}()
	Discover(context.Background(), config.Default(), nil, "")
}

func TestListAdd_MoveToEnd(t *testing.T) {
	list := &List{}
	list.add(&Hook{Name: "a"})
	list.add(&Hook{Name: "b"})
	list.add(&Hook{Name: "c"})
	list.add(&Hook{Name: "a"})

	if got := names(list); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Errorf("expected [b c a], got %v", got)
	}
	if list.Len() != 3 {
		t.Errorf("expected 3 hooks, got %d", list.Len())
	}
}
