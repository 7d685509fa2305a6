// Package coalesce collapses rapid repeated triggers into one delayed
// execution: a pending-request slot that each new trigger replaces, firing
// once after a fixed quiet interval.
package coalesce

import (
	"sync"
	"time"
)

// Scheduler holds at most one pending function. Trigger replaces the pending
// slot and restarts the quiet interval; the function runs on a timer
// goroutine once the interval passes without another trigger.
type Scheduler struct {
	quiet time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Scheduler with the given quiet interval. A non-positive
// interval fires on the next timer tick, which keeps tests fast.
func New(quiet time.Duration) *Scheduler {
	return &Scheduler{quiet: quiet}
}

// Trigger schedules fn, cancelling any previously pending function.
func (s *Scheduler) Trigger(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(s.quiet, func() {
		s.mu.Lock()
		// A newer trigger may have replaced this slot between firing and
		// locking; only the current slot may run.
		current := s.timer == t
		if current {
			s.timer = nil
		}
		s.mu.Unlock()
		if current {
			fn()
		}
	})
	s.timer = t
}

// Stop cancels the pending function, if any. It reports whether something
// was pending.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		return false
	}
	s.timer.Stop()
	s.timer = nil
	return true
}
