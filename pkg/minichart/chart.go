// Package minichart lays out and renders the per-month bar chart that doubles
// as a timeline scrubber.
package minichart

import (
	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// Padding is the inset of the plot area.
type Padding struct {
	Left, Right, Top, Bottom float64
}

// Config controls the chart geometry.
type Config struct {
	Width        float64
	Height       float64
	Padding      Padding
	PaddingInner float64
	MaxTicks     int
	// NiceTicks is the tick count the y domain is rounded for.
	NiceTicks int
}

// DefaultConfig returns the 600x90 scrubber layout.
func DefaultConfig() Config {
	return Config{
		Width:        600,
		Height:       90,
		Padding:      Padding{Left: 8, Right: 8, Top: 10, Bottom: 18},
		PaddingInner: 0.1,
		MaxTicks:     constants.MaxAxisTicks,
		NiceTicks:    10,
	}
}

// Bar is one month.
type Bar struct {
	Index  int     `json:"index"`
	Month  string  `json:"month"`
	Count  int     `json:"count"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Active bool    `json:"active"`
}

// Tick is an axis label position. Label holds the year on January bars and
// is empty elsewhere.
type Tick struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// Chart is a laid-out mini-chart.
type Chart struct {
	Config Config  `json:"-"`
	Bars   []Bar   `json:"bars"`
	Ticks  []Tick  `json:"ticks"`
	Max    float64 `json:"max"`
	active int
}

// New lays out one bar per month and marks active as current.
func New(counts []timeline.MonthCount, active int, cfg Config) *Chart {
	c := &Chart{Config: cfg, active: -1}

	peak := 0
	for _, mc := range counts {
		peak = max(peak, mc.Count)
	}
	domainMax := float64(peak)
	if peak == 0 {
		domainMax = 1
	}
	c.Max = NiceMax(domainMax, cfg.NiceTicks)

	pad := cfg.Padding
	x := newBand(len(counts), pad.Left, cfg.Width-pad.Right, cfg.PaddingInner)
	baseline := cfg.Height - pad.Bottom
	span := baseline - pad.Top

	c.Bars = make([]Bar, len(counts))
	for i, mc := range counts {
		h := float64(mc.Count) / c.Max * span
		c.Bars[i] = Bar{
			Index:  i,
			Month:  mc.Month,
			Count:  mc.Count,
			X:      x.at(i),
			Y:      baseline - h,
			Width:  x.bandwidth,
			Height: h,
		}
	}

	every := TickInterval(len(counts), cfg.MaxTicks)
	for i := 0; i < len(counts); i += every {
		label := ""
		if timeline.IsJanuary(counts[i].Month) {
			label, _ = timeline.SplitMonth(counts[i].Month)
		}
		c.Ticks = append(c.Ticks, Tick{
			Index: i,
			X:     x.at(i) + x.bandwidth/2,
			Y:     cfg.Height - 4,
			Label: label,
		})
	}

	c.SetActive(active)
	return c
}

// FromTimeline lays out the chart for a whole timeline.
func FromTimeline(tl *timeline.Timeline, active int) *Chart {
	return New(tl.Counts(), active, DefaultConfig())
}

// SetActive highlights bar i and clears every other bar. An index outside
// the chart clears all bars.
func (c *Chart) SetActive(i int) {
	c.active = -1
	for j := range c.Bars {
		c.Bars[j].Active = j == i
		if j == i {
			c.active = i
		}
	}
}

// Active returns the highlighted index, or -1.
func (c *Chart) Active() int {
	return c.active
}
