package hooks

import "fmt"

// NotFoundError reports that no hooks are registered for an event.
// Returned by Run only when RunOptions.ErrorIfMissing is set.
type NotFoundError struct {
	Event string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find a hook named %q", e.Event)
}

// ConfigError reports a broken hook declaration: a hook bound to an
// event without a command. It aborts the whole run, not just the one
// hook, since the configuration itself is wrong.
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("hook %q has no command configured", e.Name)
}
