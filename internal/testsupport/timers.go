package testsupport

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"whispersend/internal/feedback"
)

// ManualTimers is a feedback.AfterFunc driven by Advance instead of the clock.
type ManualTimers struct {
	mu      sync.Mutex
	elapsed time.Duration
	timers  []*manualTimer
}

type manualTimer struct {
	owner    *ManualTimers
	deadline time.Duration
	fn       func()
	stopped  bool
	fired    bool
}

func (m *manualTimer) Stop() bool {
	m.owner.mu.Lock()
	defer m.owner.mu.Unlock()
	if m.stopped || m.fired {
		return false
	}
	m.stopped = true
	return true
}

// NewManualTimers returns timers at elapsed zero.
func NewManualTimers() *ManualTimers {
	return &ManualTimers{}
}

// AfterFunc registers fn to fire once Advance passes d.
func (m *ManualTimers) AfterFunc(d time.Duration, fn func()) feedback.Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	timer := &manualTimer{owner: m, deadline: m.elapsed + d, fn: fn}
	m.timers = append(m.timers, timer)
	return timer
}

// Advance moves time forward by d and fires due timers in deadline order.
func (m *ManualTimers) Advance(d time.Duration) {
	m.mu.Lock()
	m.elapsed += d
	var due []*manualTimer
	for _, timer := range m.timers {
		if !timer.stopped && !timer.fired && timer.deadline <= m.elapsed {
			timer.fired = true
			due = append(due, timer)
		}
	}
	m.mu.Unlock()

	slices.SortStableFunc(due, func(a, b *manualTimer) int {
		return cmp.Compare(a.deadline, b.deadline)
	})
	for _, timer := range due {
		timer.fn()
	}
}

// Armed counts timers that are neither fired nor stopped.
func (m *ManualTimers) Armed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, timer := range m.timers {
		if !timer.stopped && !timer.fired {
			n++
		}
	}
	return n
}
