package playback

import "time"

// ManualScheduler fires tasks only when told to. It is meant for tests and
// for driving playback from an external loop such as a terminal UI.
type ManualScheduler struct {
	tasks []*manualTask
}

type manualTask struct {
	interval  time.Duration
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.cancelled = true
}

// NewManualScheduler returns an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every records the task.
func (m *ManualScheduler) Every(d time.Duration, fn func()) Handle {
	t := &manualTask{interval: d, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Fire runs every live task once and returns how many ran.
func (m *ManualScheduler) Fire() int {
	n := 0
	for _, t := range m.live() {
		t.fn()
		n++
	}
	return n
}

// Active returns the number of tasks that have not been cancelled.
func (m *ManualScheduler) Active() int {
	return len(m.live())
}

// Interval returns the interval of the most recent live task, or zero.
func (m *ManualScheduler) Interval() time.Duration {
	live := m.live()
	if len(live) == 0 {
		return 0
	}
	return live[len(live)-1].interval
}

// Stale returns the callbacks of cancelled tasks, letting tests simulate a
// tick that was queued before the cancel.
func (m *ManualScheduler) Stale() []func() {
	var out []func()
	for _, t := range m.tasks {
		if t.cancelled {
			out = append(out, t.fn)
		}
	}
	return out
}

func (m *ManualScheduler) live() []*manualTask {
	var out []*manualTask
	for _, t := range m.tasks {
		if !t.cancelled {
			out = append(out, t)
		}
	}
	return out
}
