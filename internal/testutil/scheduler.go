package testutil

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler implements the detector Scheduler contract with
// hand-advanced time. Timers fire only when Advance crosses their deadline,
// in deadline order, so timer-driven detectors are testable without sleeps.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	timers map[int]*manualTimer
}

type manualTimer struct {
	at time.Duration
	f  func()
}

// NewManualScheduler creates a scheduler at time zero with no timers.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{timers: make(map[int]*manualTimer)}
}

// AfterFunc registers f to run once Advance moves past d from the current
// manual time. The returned cancel func is idempotent.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.timers[id] = &manualTimer{at: s.now + d, f: f}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.timers, id)
	}
}

// Advance moves manual time forward and fires every due timer in deadline
// order. Callbacks run without the scheduler lock held, so they may arm or
// cancel timers.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d

	type due struct {
		id int
		t  *manualTimer
	}
	var ready []due
	for id, t := range s.timers {
		if t.at <= s.now {
			ready = append(ready, due{id, t})
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].t.at < ready[j].t.at })
	for _, r := range ready {
		delete(s.timers, r.id)
	}
	s.mu.Unlock()

	for _, r := range ready {
		r.t.f()
	}
}

// Pending returns the number of armed timers.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
