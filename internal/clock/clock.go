// Package clock abstracts time so that flow TTL expiry and the navigation
// debounce can be simulated deterministically in tests instead of sleeping.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is the controllable handle returned by AfterFunc.
type Timer interface {
	// Stop prevents the timer from firing. Reports whether it was pending.
	Stop() bool
}

// Clock supplies the current time and deferred execution.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// =============================================================================
// SYSTEM CLOCK
// =============================================================================

type systemClock struct{}

type systemTimer struct{ t *time.Timer }

func (s systemTimer) Stop() bool { return s.t.Stop() }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return systemTimer{t: time.AfterFunc(d, f)}
}

// System returns the real wall clock.
func System() Clock { return systemClock{} }

// =============================================================================
// MANUAL CLOCK (tests)
// =============================================================================

// Manual is a hand-stepped clock. Advance moves time forward and fires any
// timers that come due, in order. Safe for concurrent use.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTimer
}

type manualTimer struct {
	clk     *Manual
	when    time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewManual creates a manual clock starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock's current instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules f to run once the clock has been advanced by d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{clk: m, when: m.now.Add(d), f: f}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward and fires due timers in firing order.
// Callbacks run without the lock held, matching time.AfterFunc semantics.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	deadline := m.now

	var due []*manualTimer
	var rest []*manualTimer
	for _, t := range m.pending {
		if !t.stopped && !t.when.After(deadline) {
			t.fired = true
			due = append(due, t)
		} else if !t.stopped {
			rest = append(rest, t)
		}
	}
	m.pending = rest
	sort.SliceStable(due, func(i, j int) bool { return due[i].when.Before(due[j].when) })
	m.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}
