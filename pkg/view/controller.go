// Package view owns the current month index and rendering mode and keeps
// the renderer and mini-chart in step with them.
//
// A Controller is confined to one goroutine: the caller serialises every
// operation, and observers run synchronously on that goroutine.
package view

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap/pkg/heat"
	"github.com/agentstation/stagemap/pkg/logging"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// Observer receives every Change.
type Observer func(Change)

// Interrupter stops playback when the user takes over.
type Interrupter interface {
	Stop()
}

// InterrupterFunc adapts a function to Interrupter.
type InterrupterFunc func()

// Stop calls f.
func (f InterrupterFunc) Stop() { f() }

type subscription struct {
	id int
	fn Observer
}

// Controller is the single owner of State.
type Controller struct {
	tl          *timeline.Timeline
	state       State
	heatEnabled bool
	heatCache   map[int]*heat.Layer
	interrupter Interrupter
	observers   []subscription
	nextID      int
	logger      *zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithHeat declares whether a heat renderer is available.
func WithHeat(enabled bool) Option {
	return func(c *Controller) {
		c.heatEnabled = enabled
	}
}

// WithInterrupter sets what stops playback on user intervention.
func WithInterrupter(i Interrupter) Option {
	return func(c *Controller) {
		c.interrupter = i
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// NewController starts at the first month that has events, in points mode.
// Heat is available unless WithHeat(false) is given.
func NewController(tl *timeline.Timeline, opts ...Option) *Controller {
	if tl == nil {
		tl = timeline.New(nil)
	}
	c := &Controller{
		tl:          tl,
		state:       State{Index: tl.FirstNonEmpty(), Mode: ModePoints},
		heatEnabled: true,
		heatCache:   make(map[int]*heat.Layer),
		logger:      logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetInterrupter replaces the interrupter. Playback engines are usually
// built after the controller, so this breaks the construction cycle.
func (c *Controller) SetInterrupter(i Interrupter) {
	c.interrupter = i
}

// Timeline returns the underlying store.
func (c *Controller) Timeline() *timeline.Timeline {
	return c.tl
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Status reports ready or no-data.
func (c *Controller) Status() Status {
	if c.tl.Empty() {
		return StatusNoData
	}
	return StatusReady
}

// HeatAvailable reports whether heat mode can be entered.
func (c *Controller) HeatAvailable() bool {
	return c.heatEnabled
}

// Len returns the number of months.
func (c *Controller) Len() int {
	return c.tl.Len()
}

// Subscribe registers an observer. Observers are called in subscription
// order. The returned function removes the observer.
func (c *Controller) Subscribe(fn Observer) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, subscription{id: id, fn: fn})
	return func() {
		for i, s := range c.observers {
			if s.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// Current builds the Change describing the present state without
// notifying anyone.
func (c *Controller) Current() Change {
	return c.change(CauseInit, false)
}

// SelectMonth makes month i current and notifies observers, even when i is
// already current. Out-of-range indexes are rejected with
// ErrIndexOutOfRange and change nothing. On an empty timeline it is a no-op.
func (c *Controller) SelectMonth(i int) error {
	return c.selectMonth(i, CauseSelect)
}

// UserSelect stops playback and then selects month i. Playback is left
// alone when i is rejected.
func (c *Controller) UserSelect(i int) error {
	if c.Status() == StatusNoData {
		return nil
	}
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.interrupt()
	return c.selectMonth(i, CauseUser)
}

// Next advances one month on behalf of playback. It reports the new index
// and false when already on the last month.
func (c *Controller) Next() (int, bool) {
	next := c.state.Index + 1
	if next >= c.tl.Len() {
		return c.state.Index, false
	}
	_ = c.selectMonth(next, CausePlayback)
	return next, true
}

// SetMode stops playback and switches the rendering mode. Asking for heat
// without a heat renderer reverts to points and flags HeatUnavailable.
func (c *Controller) SetMode(m Mode) error {
	if m != ModePoints && m != ModeHeat {
		_, err := ParseMode(string(m))
		return err
	}
	if c.Status() == StatusNoData {
		return nil
	}

	c.interrupt()

	unavailable := m == ModeHeat && !c.heatEnabled
	if unavailable {
		m = ModePoints
		c.logger.Debug().Msg("Heat renderer unavailable, staying in points mode")
	}
	c.state.Mode = m
	c.notify(c.change(CauseMode, unavailable))
	return nil
}

func (c *Controller) selectMonth(i int, cause Cause) error {
	if c.Status() == StatusNoData {
		return nil
	}
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.state.Index = i
	c.notify(c.change(cause, false))
	return nil
}

func (c *Controller) checkIndex(i int) error {
	if i < 0 || i >= c.tl.Len() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, c.tl.Len())
	}
	return nil
}

func (c *Controller) change(cause Cause, heatUnavailable bool) Change {
	frame, _ := c.tl.Frame(c.state.Index)
	ch := Change{
		State:           c.state,
		Frame:           frame,
		HeatUnavailable: heatUnavailable,
		Cause:           cause,
	}
	if c.state.Mode == ModeHeat && c.Status() == StatusReady {
		ch.Heat = c.heatFor(c.state.Index, frame)
	}
	return ch
}

// heatFor memoises layers; the timeline never changes so they never go stale.
func (c *Controller) heatFor(i int, frame timeline.Frame) *heat.Layer {
	if layer, ok := c.heatCache[i]; ok {
		return layer
	}
	layer := heat.FromFrame(frame)
	c.heatCache[i] = layer
	return layer
}

func (c *Controller) interrupt() {
	if c.interrupter != nil {
		c.interrupter.Stop()
	}
}

func (c *Controller) notify(ch Change) {
	c.logger.Debug().
		Int("month_index", ch.State.Index).
		Str("month", ch.Frame.Month).
		Str("mode", ch.State.Mode.String()).
		Str("cause", string(ch.Cause)).
		Msg("View changed")

	observers := make([]subscription, len(c.observers))
	copy(observers, c.observers)
	for _, s := range observers {
		s.fn(ch)
	}
}
