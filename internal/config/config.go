package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Hook defines a configured hook.
type Hook struct {
	Command     string   `toml:"command"`
	Events      []string `toml:"events"` // events this hook runs on
	Description string   `toml:"description"`
	Enabled     *bool    `toml:"enabled"` // local layer: false removes a global hook
}

// IsEnabled returns false only when enabled = false was set explicitly.
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// HasEvent reports whether the hook declares the given event.
func (h Hook) HasEvent(event string) bool {
	for _, e := range h.Events {
		if e == event {
			return true
		}
	}
	return false
}

// Config holds the hk configuration.
//
// Hook declaration order is significant: hooks run in the order their
// [hook.NAME] tables were encountered, global config first, then the
// per-repo local config. Redeclaring a name in a later layer moves it to
// the end of the order.
type Config struct {
	// Jobs is the default concurrency for hook runs ([hook] jobs).
	// 0 means "use the number of CPUs".
	Jobs int

	// AdviceIgnoredHook controls the advisory for non-executable hook-dir
	// files ([advice] ignored_hook). nil means enabled.
	AdviceIgnoredHook *bool

	hooks map[string]Hook
	order []string
}

// AdviceEnabled reports whether the ignored-hook advisory should be shown.
func (c *Config) AdviceEnabled() bool {
	return c.AdviceIgnoredHook == nil || *c.AdviceIgnoredHook
}

// Names returns the hook names in declaration order.
func (c *Config) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns the hook definition for name.
func (c *Config) Lookup(name string) (Hook, bool) {
	h, ok := c.hooks[name]
	return h, ok
}

// Command returns the configured command for name, if any.
// An empty command string counts as unset.
func (c *Config) Command(name string) (string, bool) {
	h, ok := c.hooks[name]
	if !ok || h.Command == "" {
		return "", false
	}
	return h.Command, true
}

// Events returns every distinct event declared by any hook, in first-seen
// order. Used for suggestions and diagnostics.
func (c *Config) Events() []string {
	var events []string
	seen := make(map[string]bool)
	for _, name := range c.order {
		for _, e := range c.hooks[name].Events {
			if !seen[e] {
				seen[e] = true
				events = append(events, e)
			}
		}
	}
	return events
}

// setHook adds or replaces a hook definition. A redeclared name moves to
// the end of the declaration order.
func (c *Config) setHook(name string, h Hook) {
	if _, exists := c.hooks[name]; exists {
		c.removeFromOrder(name)
	}
	if c.hooks == nil {
		c.hooks = make(map[string]Hook)
	}
	c.hooks[name] = h
	c.order = append(c.order, name)
}

// removeHook drops a hook definition entirely.
func (c *Config) removeHook(name string) {
	if _, exists := c.hooks[name]; !exists {
		return
	}
	delete(c.hooks, name)
	c.removeFromOrder(name)
}

func (c *Config) removeFromOrder(name string) {
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{}
}

// Path returns the path to the global config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hk", "config.toml"), nil
}

// Load reads the global config from ~/.config/hk/config.toml.
// Returns Default() if the file doesn't exist (no error).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return loadFile(path)
}

// loadFile reads and parses a single config file.
// A missing file yields an empty config without error.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// rawConfig is the TOML shape before hook-table processing.
// [hook] holds both scalar settings (jobs) and [hook.NAME] subtables,
// so it is parsed as a free-form map.
type rawConfig struct {
	Hook   map[string]any `toml:"hook"`
	Advice rawAdvice      `toml:"advice"`
}

type rawAdvice struct {
	IgnoredHook *bool `toml:"ignored_hook"`
}

// Parse parses TOML config text, preserving [hook.NAME] declaration order.
func Parse(text string) (*Config, error) {
	var raw rawConfig
	md, err := toml.Decode(text, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := &Config{
		AdviceIgnoredHook: raw.Advice.IgnoredHook,
	}

	if jobs, ok := raw.Hook["jobs"]; ok {
		n, ok := jobs.(int64)
		if !ok || n < 0 {
			return nil, fmt.Errorf("invalid hook jobs value %v: must be a non-negative integer", jobs)
		}
		cfg.Jobs = int(n)
	}

	// MetaData.Keys yields keys in order of appearance; [hook.NAME]
	// tables show up as the two-segment "Hash" keys under "hook".
	for _, key := range md.Keys() {
		parts := []string(key)
		if len(parts) != 2 || parts[0] != "hook" || md.Type(parts...) != "Hash" {
			continue
		}
		name := parts[1]
		table, ok := raw.Hook[name].(map[string]any)
		if !ok {
			continue
		}
		hook, err := parseHookTable(name, table)
		if err != nil {
			return nil, err
		}
		cfg.setHook(name, hook)
	}

	return cfg, nil
}

// parseHookTable extracts a Hook from a raw [hook.NAME] table.
func parseHookTable(name string, table map[string]any) (Hook, error) {
	var hook Hook
	for key, value := range table {
		switch key {
		case "command":
			s, ok := value.(string)
			if !ok {
				return Hook{}, fmt.Errorf("hook %q: command must be a string", name)
			}
			hook.Command = s
		case "events":
			items, ok := value.([]any)
			if !ok {
				return Hook{}, fmt.Errorf("hook %q: events must be an array of strings", name)
			}
			for _, item := range items {
				s, ok := item.(string)
				if !ok || s == "" {
					return Hook{}, fmt.Errorf("hook %q: events must be non-empty strings", name)
				}
				hook.Events = append(hook.Events, s)
			}
		case "description":
			s, ok := value.(string)
			if !ok {
				return Hook{}, fmt.Errorf("hook %q: description must be a string", name)
			}
			hook.Description = s
		case "enabled":
			b, ok := value.(bool)
			if !ok {
				return Hook{}, fmt.Errorf("hook %q: enabled must be a boolean", name)
			}
			hook.Enabled = &b
		default:
			return Hook{}, fmt.Errorf("hook %q: unknown key %q", name, key)
		}
	}
	return hook, nil
}
