package hooks

import (
	"strings"
	"sync"
)

// feeder hands a shared sequence of input lines to the tasks of a run.
//
// One cursor is shared across every task: whichever task feeds first
// consumes the remaining input, so the source is exhausted exactly once
// per run no matter how many hooks drain it. This mirrors the historical
// behavior and is deliberate; per-task replay would change semantics.
type feeder struct {
	mu    sync.Mutex
	lines []string
	next  int
}

func newFeeder(lines []string) *feeder {
	return &feeder{lines: lines}
}

// take returns the next line, newline-terminated, or ok = false once the
// source is exhausted. Safe for concurrent use.
func (f *feeder) take() (line string, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.next >= len(f.lines) {
		return "", false
	}
	line = f.lines[f.next]
	f.next++

	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	return line, true
}
