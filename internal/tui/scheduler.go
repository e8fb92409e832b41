package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentstation/stagemap/pkg/playback"
)

// tickMsg fires one scheduled task.
type tickMsg struct {
	task *task
}

// scheduler arms playback tasks as tea.Tick commands, so every tick is
// delivered through Update like any other message.
type scheduler struct {
	pending []tea.Cmd
	armed   *task // most recently armed task
}

var _ playback.Scheduler = (*scheduler)(nil)

type task struct {
	every    time.Duration
	fn       func()
	canceled bool
}

// Cancel implements playback.Handle.
func (t *task) Cancel() {
	t.canceled = true
}

// Every implements playback.Scheduler. The first tick is queued and goes
// out with the next drain.
func (s *scheduler) Every(d time.Duration, fn func()) playback.Handle {
	t := &task{every: d, fn: fn}
	s.armed = t
	s.pending = append(s.pending, t.next())
	return t
}

func (t *task) next() tea.Cmd {
	return tea.Tick(t.every, func(time.Time) tea.Msg {
		return tickMsg{task: t}
	})
}

// fire runs a delivered tick and re-arms the task if it is still live.
func (s *scheduler) fire(t *task) {
	if t.canceled {
		return
	}
	t.fn()
	if !t.canceled {
		s.pending = append(s.pending, t.next())
	}
}

// drain returns the commands queued since the last drain.
func (s *scheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
