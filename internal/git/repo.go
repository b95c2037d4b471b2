// Package git locates git repositories and their private data directories.
//
// hk never shells out to git: it only needs to resolve the git dir to find
// the hooks directory, which is a matter of reading .git files and walking
// parent directories.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no git repository encloses the start directory.
var ErrNotFound = errors.New("not in a git repository")

// Repo is a located git repository.
type Repo struct {
	// Root is the working tree root (the directory containing .git).
	// Empty for a bare repository.
	Root string

	// GitDir is the resolved git directory.
	GitDir string
}

// Find walks up from dir until it finds a git repository.
// Handles both .git directories (regular repos) and .git files (worktrees).
func Find(dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	for cur := abs; ; {
		gitPath := filepath.Join(cur, ".git")
		info, err := os.Stat(gitPath)
		if err == nil {
			gitDir, err := resolveGitDir(cur, gitPath, info)
			if err != nil {
				return nil, err
			}
			return &Repo{Root: cur, GitDir: gitDir}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, ErrNotFound
		}
		cur = parent
	}
}

// resolveGitDir resolves .git to the actual git directory.
// A .git directory is used as-is; a .git file contains a "gitdir: <path>"
// pointer (worktrees, submodules), relative paths resolved against root.
func resolveGitDir(root, gitPath string, info os.FileInfo) (string, error) {
	if info.IsDir() {
		return gitPath, nil
	}

	data, err := os.ReadFile(gitPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", gitPath, err)
	}

	line := strings.TrimSpace(string(data))
	target, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("malformed gitfile %s", gitPath)
	}
	target = strings.TrimSpace(target)

	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	return filepath.Clean(target), nil
}

// HookPath returns the path of the hook-dir hook file for event.
// The file may or may not exist; use FindHook to probe.
func (r *Repo) HookPath(event string) string {
	return filepath.Join(r.GitDir, "hooks", event)
}

// FindHook probes for the hook-dir hook file for event.
// found reports whether a file is present; executable whether the current
// platform considers it runnable. On platforms without an executable bit an
// alternate suffix is also probed (see findHookFile).
func (r *Repo) FindHook(event string) (path string, found, executable bool) {
	return findHookFile(r.HookPath(event))
}
