// Package testutil provides deterministic time sources for tests.
package testutil

import (
	"sync"
	"time"
)

// StepClock is a thread-safe clock that advances by a fixed step on every
// Now call. Tests inject it wherever production code takes a now func, so
// unlock timestamps come out realistically spaced and fully reproducible.
type StepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewStepClock creates a clock whose first Now call returns start+step.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{now: start, step: step}
}

// Now advances the clock by one step and returns the new time.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// Peek returns the current time without advancing.
func (c *StepClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
