package config

import (
	"errors"
	"os"
	"path/filepath"
)

const defaultConfig = `# hk configuration

# Hooks - executable actions bound to named events.
#
# A hook participates in 'hk run <event>' when <event> appears in its
# "events" list. Hooks run in declaration order; redeclaring a hook in a
# repo's .hk.toml moves it to the end of the order.
#
# [hook.lint]
# command = "make lint"
# description = "Run the linter"
# events = ["pre-commit"]
#
# [hook.test]
# command = "go test ./..."
# events = ["pre-commit", "pre-push"]
#
# The configured command is run through the shell, so one-liners and
# argument expansion work. Extra arguments passed after -- on the command
# line are appended as positional parameters:
#
# [hook.notify]
# command = "notify-send hk \"$1\""
# events = ["post-merge"]

# Default number of hooks to run simultaneously.
# 0 (or unset) means "number of CPUs". Override per run with -j.
#
# [hook]
# jobs = 4

# Advice - one-time warnings.
#
# [advice]
# ignored_hook = false   # silence "hook is not executable" warnings
`

const defaultLocalConfig = `# hk local config (per-repo overrides)
# Place this file at the root of your repository.
# Hooks declared here are appended after the global ones; redeclaring a
# global hook name moves it to the end of the run order.

# [hook.fmt]
# command = "gofmt -l ."
# events = ["pre-commit"]

# Disable a global hook for this repo only:
# [hook.global-hook-name]
# enabled = false

# Per-repo concurrency default:
# [hook]
# jobs = 1
`

// DefaultConfig returns the commented global config template.
func DefaultConfig() string {
	return defaultConfig
}

// DefaultLocalConfig returns the commented local config template.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

// Init creates a default config file at ~/.config/hk/config.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return writeTemplate(path, defaultConfig, force)
}

// InitLocal creates a default .hk.toml in dir.
func InitLocal(dir string, force bool) (string, error) {
	return writeTemplate(filepath.Join(dir, LocalConfigFileName), defaultLocalConfig, force)
}

func writeTemplate(path, content string, force bool) (string, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}

	return path, nil
}
