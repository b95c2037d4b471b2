// Package parallel runs child processes with bounded concurrency.
//
// Tasks are pulled one at a time from a callback, so the caller controls
// ordering without any locking of its own: NextTask, StartFailure and
// TaskFinished are never invoked concurrently with each other.
package parallel

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task is one child process to run.
type Task struct {
	// Name labels the task in callbacks.
	Name string

	// Path is the program to execute, Args its arguments.
	Path string
	Args []string

	// Dir is the working directory for the child ("" = inherit).
	Dir string

	// Env entries are appended to the current environment.
	Env []string

	// StdinFile, when set, is opened and connected to the child's stdin.
	StdinFile string

	// Feed, when set, is called repeatedly to write the child's stdin
	// incrementally. It returns done = true once there is nothing more
	// to write; the pipe is closed afterwards. Mutually exclusive with
	// StdinFile.
	Feed func(w io.Writer) (done bool, err error)
}

// Options configures a parallel run.
type Options struct {
	// Processes is the maximum number of concurrently running tasks.
	// Values below 1 are treated as 1.
	Processes int

	// Ungroup streams child output directly to Output as it is produced.
	// When false, each task's output is buffered and written in one
	// piece after the task exits, so concurrent tasks don't interleave.
	Ungroup bool

	// NextTask returns the next task to start, or nil when none remain.
	// Returning an error aborts the run.
	NextTask func() (*Task, error)

	// StartFailure is called when a task's process could not be started.
	StartFailure func(task *Task, err error)

	// TaskFinished is called with the exit code of each task that ran.
	// Returning an error aborts the run: tasks already running finish,
	// but no new ones start.
	TaskFinished func(task *Task, exitCode int) error

	// Output receives child output (stdout and stderr combined).
	// Defaults to os.Stderr.
	Output io.Writer
}

// Run pulls tasks from opts.NextTask and executes them until the source
// is exhausted, a callback aborts, or ctx is cancelled. It returns the
// first abort error, if any.
func Run(ctx context.Context, opts Options) error {
	if opts.NextTask == nil {
		panic("parallel: NextTask is required")
	}
	if opts.Processes < 1 {
		opts.Processes = 1
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var (
		mu      sync.Mutex // serializes callbacks, output flushes and aborted
		aborted error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Processes) // g.Go blocks here when all slots are busy

	for {
		mu.Lock()
		stop := aborted != nil
		mu.Unlock()
		if stop || ctx.Err() != nil {
			break
		}

		task, err := opts.NextTask()
		if err != nil {
			mu.Lock()
			if aborted == nil {
				aborted = err
			}
			mu.Unlock()
			break
		}
		if task == nil {
			break
		}

		g.Go(func() error {
			// The abort may have happened while this task waited for
			// a slot. Pulled but never started.
			mu.Lock()
			stop := aborted != nil
			mu.Unlock()
			if stop {
				return nil
			}

			code, buf, err := runTask(ctx, task, opts.Ungroup, out)

			mu.Lock()
			defer mu.Unlock()

			if buf != nil && buf.Len() > 0 {
				_, _ = buf.WriteTo(out)
			}
			if err != nil {
				if opts.StartFailure != nil {
					opts.StartFailure(task, err)
				}
				return nil
			}
			if opts.TaskFinished != nil {
				if cbErr := opts.TaskFinished(task, code); cbErr != nil && aborted == nil {
					aborted = cbErr
				}
			}
			return nil
		})
	}

	_ = g.Wait()

	mu.Lock()
	defer mu.Unlock()
	return aborted
}

// runTask executes a single task. When grouped, the returned buffer
// holds the task's combined output; the caller flushes it under lock.
func runTask(ctx context.Context, task *Task, ungroup bool, out io.Writer) (int, *bytes.Buffer, error) {
	cmd := exec.CommandContext(ctx, task.Path, task.Args...)
	cmd.Dir = task.Dir
	if len(task.Env) > 0 {
		cmd.Env = append(os.Environ(), task.Env...)
	}

	var buf *bytes.Buffer
	if ungroup {
		cmd.Stdout = out
		cmd.Stderr = out
	} else {
		buf = &bytes.Buffer{}
		cmd.Stdout = buf
		cmd.Stderr = buf
	}

	var feedDone chan struct{}

	switch {
	case task.StdinFile != "":
		f, err := os.Open(task.StdinFile)
		if err != nil {
			return 0, buf, err
		}
		defer f.Close()
		cmd.Stdin = f
	case task.Feed != nil:
		pipe, err := cmd.StdinPipe()
		if err != nil {
			return 0, buf, err
		}
		feedDone = make(chan struct{})
		defer func() { <-feedDone }()
		go func() {
			defer close(feedDone)
			defer pipe.Close()
			for {
				// A write error (the child exited without draining
				// its stdin) ends feeding early.
				done, err := task.Feed(pipe)
				if done || err != nil {
					return
				}
			}
		}()
	}

	if err := cmd.Start(); err != nil {
		return 0, buf, err
	}

	err := cmd.Wait()
	if err == nil {
		return 0, buf, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			code = 1 // killed by a signal
		}
		return code, buf, nil
	}
	return 0, buf, err
}
