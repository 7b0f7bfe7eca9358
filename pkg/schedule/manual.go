package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler whose clock only moves when Advance is
// called. Callbacks run on the goroutine calling Advance, outside the
// scheduler lock, so they may schedule further callbacks.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

// NewManual creates a manual scheduler at offset zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	owner *Manual
	due   time.Duration
	seq   int
	fn    func()
	done  bool
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.owner.remove(t)
	return true
}

// AfterFunc registers fn to run once the manual clock reaches now+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	timer := &manualTimer{owner: m, due: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, timer)
	return timer
}

// Advance moves the clock forward by d, firing every timer that becomes due in
// deadline order (ties in registration order). Timers scheduled by a callback
// fire within the same call when their deadline falls inside the window. It
// returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	fired := 0
	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return fired
		}
		next.done = true
		m.remove(next)
		if next.due > m.now {
			m.now = next.due
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
		fired++
	}
}

// Pending reports the number of timers waiting to fire.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Next returns the delay until the earliest pending timer.
func (m *Manual) Next() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.timers) == 0 {
		return 0, false
	}
	m.sortLocked()
	return m.timers[0].due - m.now, true
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) nextDueLocked(target time.Duration) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	m.sortLocked()
	if m.timers[0].due > target {
		return nil
	}
	return m.timers[0]
}

func (m *Manual) sortLocked() {
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due == m.timers[j].due {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due < m.timers[j].due
	})
}

func (m *Manual) remove(target *manualTimer) {
	for i, timer := range m.timers {
		if timer == target {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}
