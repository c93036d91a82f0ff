package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. Nothing runs until the
// owner calls Flush or Advance, which makes timer-dependent behaviour
// deterministic in tests. Post may be called from other goroutines.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
	posted []Task
}

var _ Scheduler = (*Manual)(nil)

type manualTimer struct {
	m       *Manual
	due     time.Duration
	seq     uint64
	task    Task
	stopped bool
	fired   bool
}

// NewManual returns a scheduler whose clock starts at zero.
func NewManual() *Manual {
	return &Manual{}
}

// After schedules task at now+d on the virtual clock.
func (m *Manual) After(d time.Duration, task Task) Timer {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{m: m, due: m.now + d, seq: m.seq, task: task}
	m.timers = append(m.timers, t)
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due == m.timers[j].due {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due < m.timers[j].due
	})
	return t
}

// Post queues task for the next Flush or Advance.
func (m *Manual) Post(task Task) {
	m.mu.Lock()
	m.posted = append(m.posted, task)
	m.mu.Unlock()
}

// Now is the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending counts queued tasks and live timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posted) + len(m.timers)
}

// Flush runs posted tasks and timers that are already due, including any
// they schedule for the current instant. It returns how many tasks ran.
func (m *Manual) Flush() int {
	return m.Advance(0)
}

// Advance moves the clock forward by d, running everything that falls due in
// order. Posted tasks run before timers.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	ran := 0
	for {
		if task := m.nextPosted(); task != nil {
			task()
			ran++
			continue
		}
		t := m.nextDue(target)
		if t == nil {
			break
		}
		t.task()
		ran++
	}

	m.mu.Lock()
	if m.now < target {
		m.now = target
	}
	m.mu.Unlock()

	if debugLog != nil && ran > 0 {
		debugLog("[Scheduler] ran", ran, "tasks, clock at", target)
	}
	return ran
}

func (m *Manual) nextPosted() Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.posted) == 0 {
		return nil
	}
	task := m.posted[0]
	m.posted = m.posted[1:]
	return task
}

// nextDue pops the earliest timer due at or before target and moves the
// clock to its deadline.
func (m *Manual) nextDue(target time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.timers) == 0 || m.timers[0].due > target {
		return nil
	}
	t := m.timers[0]
	m.timers = m.timers[1:]
	t.fired = true
	if t.due > m.now {
		m.now = t.due
	}
	return t
}

func (t *manualTimer) Stop() bool {
	m := t.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			break
		}
	}
	return true
}
