package hooks

import "io"

// RunOptions configures one orchestration run.
type RunOptions struct {
	// Jobs caps how many hooks run at once. 0 falls back to the
	// configured [hook] jobs value, then to the number of CPUs.
	Jobs int

	// StdinFile is opened read-only and connected to each hook's stdin.
	StdinFile string

	// StdinLines feeds a shared sequence of lines to the hooks of the
	// run (see feeder). Setting both StdinFile and StdinLines is a
	// programming error and panics.
	StdinLines []string

	// Args are appended verbatim to every hook invocation.
	Args []string

	// Dir overrides the working directory hooks run in ("" = inherit).
	Dir string

	// Env entries are added to every hook's environment.
	Env []string

	// ErrorIfMissing turns "no hooks registered for this event" into a
	// NotFoundError instead of a silent success.
	ErrorIfMissing bool

	// InvokedHook, when non-nil, reports whether at least one hook
	// actually ran. Reset to false at the start of every run.
	InvokedHook *bool

	// Output receives the hooks' combined stdout and stderr.
	// Defaults to os.Stderr.
	Output io.Writer
}
