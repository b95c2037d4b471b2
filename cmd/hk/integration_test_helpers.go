//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphi011/hk/internal/config"
	"github.com/raphi011/hk/internal/log"
	"github.com/raphi011/hk/internal/output"
)

// testContext builds a command context with captured stdout/stderr, the
// given global config, and workDir as the working directory.
func testContext(t *testing.T, cfg *config.Config, workDir string) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(&stderr, false, false))
	ctx = output.WithPrinter(ctx, &stdout)
	ctx = config.WithConfig(ctx, cfg)
	ctx = config.WithWorkDir(ctx, workDir)
	return ctx, &stdout, &stderr
}

// parseConfig parses TOML config text or fails the test.
func parseConfig(t *testing.T, text string) *config.Config {
	t.Helper()

	cfg, err := config.Parse(text)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return cfg
}

// setupTestRepo creates a repo skeleton (a .git dir with a hooks dir)
// and returns its root. No git binary needed: hk only reads the layout.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git", "hooks"), 0o755); err != nil {
		t.Fatalf("create repo skeleton: %v", err)
	}
	return dir
}

// writeHookFile creates a hook-dir hook script in the repo at root.
func writeHookFile(t *testing.T, root, event, script string, mode os.FileMode) string {
	t.Helper()

	path := filepath.Join(root, ".git", "hooks", event)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), mode); err != nil {
		t.Fatalf("write hook file: %v", err)
	}
	return path
}

// writeLocalConfig writes a .hk.toml at the repo root.
func writeLocalConfig(t *testing.T, root, text string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(root, config.LocalConfigFileName), []byte(text), 0o644); err != nil {
		t.Fatalf("write local config: %v", err)
	}
}
