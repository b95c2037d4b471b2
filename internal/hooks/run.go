package hooks

import (
	"context"
	"runtime"

	"github.com/raphi011/hk/internal/config"
	"github.com/raphi011/hk/internal/git"
	"github.com/raphi011/hk/internal/log"
	"github.com/raphi011/hk/internal/parallel"
)

// Run executes every hook registered for event and returns the aggregate
// exit code: the bitwise OR of all hook exit codes, so any failing hook
// makes the result nonzero regardless of completion order.
//
// With no hooks registered the run succeeds immediately, unless
// opts.ErrorIfMissing is set, in which case it returns a NotFoundError.
// A broken declaration (event without command) returns a ConfigError and
// aborts the batch: hooks started earlier may finish, later ones never
// start. Panics on nil opts or on both stdin sources set; those are
// caller bugs, not runtime conditions.
func Run(ctx context.Context, cfg *config.Config, repo *git.Repo, event string, opts *RunOptions) (int, error) {
	if opts == nil {
		panic("hooks: nil RunOptions")
	}
	if opts.StdinFile != "" && len(opts.StdinLines) > 0 {
		panic("hooks: StdinFile and StdinLines are mutually exclusive")
	}
	if opts.InvokedHook != nil {
		*opts.InvokedHook = false
	}

	list := Discover(ctx, cfg, repo, event)
	if list.Len() == 0 {
		if opts.ErrorIfMissing {
			return 1, &NotFoundError{Event: event}
		}
		return 0, nil
	}

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = cfg.Jobs
	}
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}

	var source *feeder
	if len(opts.StdinLines) > 0 {
		source = newFeeder(opts.StdinLines)
	}

	p := &planner{
		list:   list,
		cfg:    cfg,
		opts:   opts,
		feeder: source,
	}

	logger := log.FromContext(ctx)

	var (
		result  int
		invoked bool
	)

	err := parallel.Run(ctx, parallel.Options{
		Processes: jobs,
		// A single process (or a single hook) cannot interleave with
		// anything, so its output streams through unbuffered.
		Ungroup:  jobs == 1 || list.Len() == 1,
		NextTask: p.next,
		StartFailure: func(task *parallel.Task, err error) {
			logger.Warnf("could not start hook %q: %v", task.Name, err)
			result |= 1
		},
		TaskFinished: func(task *parallel.Task, exitCode int) error {
			logger.Debugf("hook %q exited with code %d", task.Name, exitCode)
			result |= exitCode
			invoked = true
			return nil
		},
		Output: opts.Output,
	})

	if opts.InvokedHook != nil {
		*opts.InvokedHook = invoked
	}

	if err != nil {
		if result == 0 {
			result = 1
		}
		return result, err
	}
	return result, nil
}
