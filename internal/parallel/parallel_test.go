//go:build !windows

package parallel

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
)

// shTask builds a task running a shell snippet.
func shTask(name, script string) *Task {
	return &Task{Name: name, Path: "sh", Args: []string{"-c", script}}
}

// taskQueue returns a NextTask callback serving the given tasks in order.
func taskQueue(tasks ...*Task) func() (*Task, error) {
	i := 0
	return func() (*Task, error) {
		if i >= len(tasks) {
			return nil, nil
		}
		t := tasks[i]
		i++
		return t, nil
	}
}

func TestRun_ExitCodes(t *testing.T) {
	var (
		mu    sync.Mutex
		codes = map[string]int{}
	)

	err := Run(context.Background(), Options{
		Processes: 2,
		NextTask:  taskQueue(shTask("ok", "exit 0"), shTask("one", "exit 1"), shTask("three", "exit 3")),
		TaskFinished: func(task *Task, exitCode int) error {
			mu.Lock()
			defer mu.Unlock()
			codes[task.Name] = exitCode
			return nil
		},
		Output: io.Discard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]int{"ok": 0, "one": 1, "three": 3}
	for name, code := range want {
		if codes[name] != code {
			t.Errorf("task %s: expected exit code %d, got %d", name, code, codes[name])
		}
	}
}

func TestRun_GroupedOutputIsContiguous(t *testing.T) {
	var out bytes.Buffer

	// slow prints its second line well after fast finishes. With grouped
	// output the two lines must still appear back to back.
	err := Run(context.Background(), Options{
		Processes: 2,
		NextTask: taskQueue(
			shTask("slow", "echo slow-1; sleep 0.2; echo slow-2"),
			shTask("fast", "echo fast-1"),
		),
		Output: &out,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "slow-1\nslow-2\n") {
		t.Errorf("expected slow task output to be contiguous, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "fast-1\n") {
		t.Errorf("expected fast task output, got:\n%s", out.String())
	}
}

func TestRun_StdoutGoesToOutput(t *testing.T) {
	var out bytes.Buffer

	err := Run(context.Background(), Options{
		Processes: 1,
		Ungroup:   true,
		NextTask:  taskQueue(shTask("both", "echo to-stdout; echo to-stderr >&2")),
		Output:    &out,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"to-stdout", "to-stderr"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output, got:\n%s", want, out.String())
		}
	}
}

func TestRun_StartFailure(t *testing.T) {
	var (
		failed   []string
		finished []string
	)

	err := Run(context.Background(), Options{
		Processes: 1,
		NextTask: taskQueue(
			&Task{Name: "missing", Path: "/nonexistent/binary"},
			shTask("ok", "exit 0"),
		),
		StartFailure: func(task *Task, err error) {
			failed = append(failed, task.Name)
		},
		TaskFinished: func(task *Task, exitCode int) error {
			finished = append(finished, task.Name)
			return nil
		},
		Output: io.Discard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(failed) != 1 || failed[0] != "missing" {
		t.Errorf("expected start failure for missing, got %v", failed)
	}
	// Start failure of one task must not block the rest
	if len(finished) != 1 || finished[0] != "ok" {
		t.Errorf("expected ok to finish, got %v", finished)
	}
}

func TestRun_Stdin(t *testing.T) {
	t.Run("feeder", func(t *testing.T) {
		lines := []string{"alpha\n", "beta\n"}
		i := 0
		feed := func(w io.Writer) (bool, error) {
			if i >= len(lines) {
				return true, nil
			}
			_, err := io.WriteString(w, lines[i])
			i++
			return false, err
		}

		var out bytes.Buffer
		task := shTask("cat", "cat")
		task.Feed = feed

		err := Run(context.Background(), Options{
			Processes: 1,
			NextTask:  taskQueue(task),
			Output:    &out,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.String() != "alpha\nbeta\n" {
			t.Errorf("expected fed lines echoed back, got %q", out.String())
		}
	})

	t.Run("no stdin source reads EOF", func(t *testing.T) {
		var code = -1
		err := Run(context.Background(), Options{
			Processes: 1,
			NextTask:  taskQueue(shTask("cat", "cat")),
			TaskFinished: func(task *Task, exitCode int) error {
				code = exitCode
				return nil
			},
			Output: io.Discard,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if code != 0 {
			t.Errorf("expected cat to exit 0 on empty stdin, got %d", code)
		}
	})
}

func TestRun_AbortStopsNewTasks(t *testing.T) {
	boom := errors.New("boom")
	var started []string

	pulled := 0
	err := Run(context.Background(), Options{
		Processes: 1,
		NextTask: func() (*Task, error) {
			pulled++
			if pulled > 5 {
				return nil, nil
			}
			name := string(rune('a' + pulled - 1))
			return shTask(name, "echo "+name), nil
		},
		TaskFinished: func(task *Task, exitCode int) error {
			started = append(started, task.Name)
			return boom // abort after the first finished task
		},
		Output: io.Discard,
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected abort error, got %v", err)
	}
	if len(started) != 1 {
		t.Errorf("expected exactly one task to run after abort, got %v", started)
	}
}

func TestRun_NextTaskError(t *testing.T) {
	bad := errors.New("bad task")
	err := Run(context.Background(), Options{
		Processes: 2,
		NextTask: func() (*Task, error) {
			return nil, bad
		},
		Output: io.Discard,
	})
	if !errors.Is(err, bad) {
		t.Fatalf("expected NextTask error, got %v", err)
	}
}

func TestRun_BoundedConcurrency(t *testing.T) {
	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	track := func(delta int) {
		mu.Lock()
		defer mu.Unlock()
		running += delta
		if running > peak {
			peak = running
		}
	}

	tasks := make([]*Task, 6)
	for i := range tasks {
		tasks[i] = shTask("sleep", "sleep 0.1")
	}

	queue := taskQueue(tasks...)
	err := Run(context.Background(), Options{
		Processes: 2,
		NextTask: func() (*Task, error) {
			// NextTask runs serially right before a slot opens, so the
			// pull itself marks the task as in flight.
			t, err := queue()
			if t != nil {
				track(1)
			}
			return t, err
		},
		TaskFinished: func(task *Task, exitCode int) error {
			track(-1)
			return nil
		},
		Output: io.Discard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One task can be pulled while two are still running
	if peak > 3 {
		t.Errorf("expected at most 3 tasks in flight, got %d", peak)
	}
}
