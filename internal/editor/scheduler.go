package editor

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs a callback after a delay. Sessions use it for the autosave
// debounce.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemScheduler schedules on the wall clock with time.AfterFunc.
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// ManualScheduler only fires callbacks when Advance moves its virtual clock.
// Callbacks run synchronously on the goroutine calling Advance.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	owner *ManualScheduler
	at    time.Duration
	seq   int
	fn    func()
	done  bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{owner: m, at: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d and fires every timer that became due,
// earliest first.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualTimer
	remaining := m.timers[:0]
	for _, t := range m.timers {
		switch {
		case t.done:
		case t.at <= m.now:
			t.done = true
			due = append(due, t)
		default:
			remaining = append(remaining, t)
		}
	}
	m.timers = remaining
	m.mu.Unlock()

	slices.SortFunc(due, func(a, b *manualTimer) int {
		if c := cmp.Compare(a.at, b.at); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending reports how many timers are armed and not yet fired or stopped.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.done {
			n++
		}
	}
	return n
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}
