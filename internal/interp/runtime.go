package interp

import "time"

// Runtime provides the interface between the interpreter and the outside
// world. Natives reach the host only through it.
type Runtime interface {
	// Now returns the current wall-clock time.
	Now() time.Time
}

// DefaultRuntime implements Runtime using OS facilities.
type DefaultRuntime struct{}

func NewDefaultRuntime() *DefaultRuntime { return &DefaultRuntime{} }

func (r *DefaultRuntime) Now() time.Time { return time.Now() }

// TestRuntime implements Runtime with a deterministic clock: every call to
// Now returns the current instant and then advances it by Step.
type TestRuntime struct {
	now  time.Time
	step time.Duration
}

// NewTestRuntime creates a test runtime starting at start.
func NewTestRuntime(start time.Time, step time.Duration) *TestRuntime {
	return &TestRuntime{now: start, step: step}
}

func (r *TestRuntime) Now() time.Time {
	t := r.now
	r.now = r.now.Add(r.step)
	return t
}
