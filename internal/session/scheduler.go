package session

import (
	"sync"
	"time"
)

// Scheduler drives the per-notification expiry timers: at most one live
// timer per id, one-shot firing, and cancellation that is mutually exclusive
// with firing for a given id.
type Scheduler struct {
	mu     sync.Mutex
	timers map[uint32]*time.Timer
}

// NewScheduler creates an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[uint32]*time.Timer)}
}

// Arm installs a one-shot timer for id. A duration of zero or less does not
// arm anything. Re-arming an id supersedes its pending timer. The fire
// callback runs at most once and only while the timer is still the current
// one for its id, so Cancel followed by the old timer expiring is a no-op.
func (s *Scheduler) Arm(id uint32, d time.Duration, fire func()) {
	if d <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.timers[id]; ok {
		old.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		current, ok := s.timers[id]
		if !ok || current != t {
			// Cancelled or superseded between expiry and dispatch.
			s.mu.Unlock()
			return
		}
		delete(s.timers, id)
		s.mu.Unlock()

		fire()
	})
	s.timers[id] = t
}

// Cancel removes the pending timer for id, if any, and guarantees its fire
// callback will not run afterward. Cancelling an unarmed id is a no-op.
func (s *Scheduler) Cancel(id uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	t.Stop()
	return true
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
