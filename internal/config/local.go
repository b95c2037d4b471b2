package config

import "path/filepath"

// LocalConfigFileName is the per-repo config file, placed at the
// repository root.
const LocalConfigFileName = ".hk.toml"

// LoadLocal reads the per-repo .hk.toml from the given repo root.
// Returns an empty config (no error) if the file doesn't exist.
func LoadLocal(repoRoot string) (*Config, error) {
	return loadFile(filepath.Join(repoRoot, LocalConfigFileName))
}

// MergeLocal merges a per-repo config into the global config, returning a
// new Config without mutating either.
//
// Hooks merge by name: a local redeclaration replaces the global entry and
// moves it to the end of the declaration order ("last redeclaration wins
// position"); enabled = false removes the global hook for this repo.
func MergeLocal(global, local *Config) *Config {
	merged := &Config{
		Jobs:              global.Jobs,
		AdviceIgnoredHook: global.AdviceIgnoredHook,
	}

	for _, name := range global.order {
		merged.setHook(name, global.hooks[name])
	}

	if local == nil {
		return merged
	}

	for _, name := range local.order {
		hook := local.hooks[name]
		if !hook.IsEnabled() {
			merged.removeHook(name)
			continue
		}
		merged.setHook(name, hook)
	}

	if local.Jobs != 0 {
		merged.Jobs = local.Jobs
	}
	if local.AdviceIgnoredHook != nil {
		merged.AdviceIgnoredHook = local.AdviceIgnoredHook
	}

	return merged
}

// LoadForRepo returns the effective config for a repo: the global config
// with the repo's .hk.toml merged in.
func LoadForRepo(repoRoot string) (*Config, error) {
	global, err := Load()
	if err != nil {
		return nil, err
	}
	local, err := LoadLocal(repoRoot)
	if err != nil {
		return nil, err
	}
	return MergeLocal(global, local), nil
}
