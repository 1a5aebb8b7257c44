package feedback

import (
	"slices"
	"sync"
	"time"
)

// Stopper is the part of *time.Timer the scheduler needs.
type Stopper interface {
	Stop() bool
}

// AfterFunc arranges for f to run after d.
type AfterFunc func(d time.Duration, f func()) Stopper

// StdAfterFunc schedules with the runtime timer.
func StdAfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

type scheduled struct {
	name  string
	fn    func()
	timer Stopper
}

// Scheduler owns delayed tasks. Each task runs at most once: on its timer,
// on Flush, or never if cancelled or stopped first.
type Scheduler struct {
	after AfterFunc

	mu      sync.Mutex
	next    uint64
	pending map[uint64]*scheduled
}

// NewScheduler returns a Scheduler backed by after, or the runtime timer when
// after is nil.
func NewScheduler(after AfterFunc) *Scheduler {
	if after == nil {
		after = StdAfterFunc
	}
	return &Scheduler{after: after, pending: map[uint64]*scheduled{}}
}

// Task is a handle to one scheduled function.
type Task struct {
	id        uint64
	scheduler *Scheduler
}

// Schedule runs fn after delay.
func (s *Scheduler) Schedule(name string, delay time.Duration, fn func()) *Task {
	s.mu.Lock()
	s.next++
	id := s.next
	entry := &scheduled{name: name, fn: fn}
	s.pending[id] = entry
	s.mu.Unlock()

	timer := s.after(delay, func() {
		if fn, _, ok := s.take(id); ok {
			fn()
		}
	})

	// The task may have been cancelled, flushed, or stopped before its timer
	// existed; nobody else will stop the timer in that case.
	s.mu.Lock()
	_, stillPending := s.pending[id]
	if stillPending {
		entry.timer = timer
	}
	s.mu.Unlock()
	if !stillPending && timer != nil {
		timer.Stop()
	}
	return &Task{id: id, scheduler: s}
}

// Cancel prevents the task from running. It reports whether the task was
// still pending.
func (t *Task) Cancel() bool {
	if t == nil || t.scheduler == nil {
		return false
	}
	_, timer, ok := t.scheduler.take(t.id)
	if !ok {
		return false
	}
	if timer != nil {
		timer.Stop()
	}
	return true
}

// Pending returns the number of tasks that have not yet run or been cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// PendingNames lists the names of pending tasks in scheduling order.
func (s *Scheduler) PendingNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint64, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, s.pending[id].name)
	}
	return names
}

// Flush runs every pending task now, in scheduling order, and stops their
// timers. One-shot callers use it before exiting so nothing stays on screen.
func (s *Scheduler) Flush() {
	for _, entry := range s.drain() {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		entry.fn()
	}
}

// Stop cancels every pending task without running it.
func (s *Scheduler) Stop() {
	for _, entry := range s.drain() {
		if entry.timer != nil {
			entry.timer.Stop()
		}
	}
}

// take removes a pending task, returning its function and timer as they were
// under the lock.
func (s *Scheduler) take(id uint64) (func(), Stopper, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.pending[id]
	if !ok {
		return nil, nil, false
	}
	delete(s.pending, id)
	return entry.fn, entry.timer, true
}

// drain removes every pending task and returns copies taken under the lock.
func (s *Scheduler) drain() []scheduled {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint64, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]scheduled, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.pending[id])
		delete(s.pending, id)
	}
	return out
}
