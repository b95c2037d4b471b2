package hooks

import (
	"io"
	"path/filepath"

	"github.com/raphi011/hk/internal/config"
	"github.com/raphi011/hk/internal/parallel"
)

// planner turns the discovered hook list into a stream of executable
// tasks, one per call. The executor calls next serially, so the cursor
// needs no locking.
type planner struct {
	list   *List
	cfg    *config.Config
	opts   *RunOptions
	feeder *feeder
	cursor int
}

// next resolves the hook under the cursor into a task and advances.
// Returns (nil, nil) once the list is exhausted. A configured hook with
// no command is a ConfigError: the whole run aborts, not just this hook.
func (p *planner) next() (*parallel.Task, error) {
	if p.cursor >= p.list.Len() {
		return nil, nil
	}
	hook := p.list.At(p.cursor)
	p.cursor++

	task := &parallel.Task{
		Name: hook.Describe(),
		Dir:  p.opts.Dir,
		Env:  p.opts.Env,
	}

	if hook.Anonymous() {
		// Hook-dir hooks are executed directly, by path. With a
		// working-dir override the path must survive the chdir.
		path := hook.Path
		if p.opts.Dir != "" {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		task.Path = path
		task.Args = p.opts.Args
	} else {
		command, ok := p.cfg.Command(hook.Name)
		if !ok {
			return nil, &ConfigError{Name: hook.Name}
		}
		// Shell-interpreted so one-liners work; trailing caller args
		// become the command's positional parameters.
		task.Path = "sh"
		task.Args = append([]string{"-c", command + ` "$@"`, command}, p.opts.Args...)
	}

	switch {
	case p.opts.StdinFile != "":
		task.StdinFile = p.opts.StdinFile
	case p.feeder != nil:
		task.Feed = func(w io.Writer) (bool, error) {
			line, ok := p.feeder.take()
			if !ok {
				return true, nil
			}
			_, err := io.WriteString(w, line)
			return false, err
		}
	}

	return task, nil
}
