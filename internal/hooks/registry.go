// Package hooks discovers and runs the hooks registered for an event.
//
// Hooks come from two sources: [hook.NAME] config tables whose events list
// contains the event, and the legacy executable file <gitdir>/hooks/<event>.
// Discovery produces a deterministic order (config declaration order, the
// hook-dir hook last); execution runs the hooks as child processes with
// bounded concurrency and folds their exit codes into one aggregate result.
package hooks

import (
	"context"
	"sync"

	"github.com/raphi011/hk/internal/config"
	"github.com/raphi011/hk/internal/git"
	"github.com/raphi011/hk/internal/log"
)

// Hook is one discovered hook for an event.
type Hook struct {
	// Name is the configured identity. Empty for the hook-dir hook.
	Name string

	// Path is the hook file, set only for the hook-dir hook.
	Path string
}

// Anonymous reports whether this is the hook-dir hook.
func (h *Hook) Anonymous() bool {
	return h.Name == ""
}

// Describe returns the hook's display form: the configured name, or the
// file path for the hook-dir hook.
func (h *Hook) Describe() string {
	if h.Anonymous() {
		return h.Path
	}
	return h.Name
}

// List is the ordered hooks discovered for one event.
// Names are unique within a list: adding an already-present name moves
// the hook to the end instead of duplicating it.
type List struct {
	hooks []*Hook
	index map[string]int
}

func (l *List) Len() int {
	return len(l.hooks)
}

// At returns the hook at position i.
func (l *List) At(i int) *Hook {
	return l.hooks[i]
}

// Hooks returns the hooks in order.
func (l *List) Hooks() []*Hook {
	out := make([]*Hook, len(l.hooks))
	copy(out, l.hooks)
	return out
}

// add appends h, moving an existing hook of the same name to the end.
// The anonymous hook has no name and never collides with a named one.
func (l *List) add(h *Hook) {
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if !h.Anonymous() {
		if at, ok := l.index[h.Name]; ok {
			l.hooks = append(l.hooks[:at], l.hooks[at+1:]...)
			for name, i := range l.index {
				if i > at {
					l.index[name] = i - 1
				}
			}
		}
		l.index[h.Name] = len(l.hooks)
	}
	l.hooks = append(l.hooks, h)
}

// advised tracks events whose ignored-hook advisory was already shown,
// so each is warned about at most once per process.
var (
	advisedMu sync.Mutex
	advised   = map[string]bool{}
)

// Discover builds the ordered hook list for event.
//
// Configured hooks appear in config declaration order; a repo's hook-dir
// hook, when present and executable, is appended last. A present but
// non-executable hook-dir file is skipped with a one-time advisory
// (suppressed via [advice] ignored_hook = false). repo may be nil, in
// which case only configured hooks are considered.
//
// Panics on an empty event name: callers validate user input before
// reaching discovery.
func Discover(ctx context.Context, cfg *config.Config, repo *git.Repo, event string) *List {
	if event == "" {
		panic("hooks: empty event name")
	}

	list := &List{}

	for _, name := range cfg.Names() {
		hook, _ := cfg.Lookup(name)
		if hook.HasEvent(event) {
			list.add(&Hook{Name: name})
		}
	}

	if repo != nil {
		path, found, executable := repo.FindHook(event)
		switch {
		case found && executable:
			list.add(&Hook{Path: path})
		case found && cfg.AdviceEnabled():
			advisedMu.Lock()
			first := !advised[event]
			advised[event] = true
			advisedMu.Unlock()
			if first {
				logger := log.FromContext(ctx)
				logger.Warnf("the %q hook was ignored because it is not executable", path)
				logger.Warnf("disable this warning with [advice] ignored_hook = false")
			}
		}
	}

	return list
}
