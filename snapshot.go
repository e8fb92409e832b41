package stagemap

import (
	"github.com/agentstation/stagemap/pkg/minichart"
	"github.com/agentstation/stagemap/pkg/playback"
	"github.com/agentstation/stagemap/pkg/render"
	"github.com/agentstation/stagemap/pkg/view"
)

// Snapshot is an immutable picture of the session after one change.
// Version increases with every published snapshot.
type Snapshot struct {
	Version       uint64         `json:"version"`
	Status        view.Status    `json:"status"`
	State         view.State     `json:"state"`
	Cause         view.Cause     `json:"cause"`
	Playback      playback.State `json:"playback"`
	IntervalMS    int64          `json:"interval_ms"`
	Months        int            `json:"months"`
	StartMonth    string         `json:"start_month,omitempty"`
	EndMonth      string         `json:"end_month,omitempty"`
	HeatAvailable bool           `json:"heat_available"`
	ActiveBar     int            `json:"active_bar"`
	Panel         render.Panel   `json:"panel"`
	Error         string         `json:"error,omitempty"`
}

// Playing reports whether playback is running.
func (s Snapshot) Playing() bool {
	return s.Playback == playback.Playing
}

// Snapshot returns the latest published snapshot.
func (p *player) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Chart lays out the mini-chart with the current month highlighted.
func (p *player) Chart() *minichart.Chart {
	return minichart.FromTimeline(p.tl, p.Snapshot().ActiveBar)
}

// publish builds a snapshot from loop-confined state and notifies hooks.
// It must run on the loop, or before the loop starts.
func (p *player) publish() {
	status := p.Status()
	start, end := p.tl.Range()

	snap := Snapshot{
		Status:        status,
		State:         p.controller.State(),
		Cause:         p.last.Cause,
		Playback:      p.engine.State(),
		IntervalMS:    p.engine.Interval().Milliseconds(),
		Months:        p.tl.Len(),
		StartMonth:    start,
		EndMonth:      end,
		HeatAvailable: p.controller.HeatAvailable(),
		ActiveBar:     p.chart.Active(),
	}
	if status == view.StatusReady {
		snap.Panel = render.NewPanel(p.last)
	} else {
		snap.Panel = render.StatusPanel(status)
	}
	if p.loadErr != nil {
		snap.Error = p.loadErr.Error()
	}

	p.mu.Lock()
	p.version++
	snap.Version = p.version
	p.snapshot = snap
	p.mu.Unlock()

	p.hooks.trigger(snap)
}
