// Package stagemap animates a monthly timeline of geolocated events.
//
// A Player owns one presentation session: the current month, the rendering
// mode (points or heat) and the playback engine that steps through months on
// a timer. Every mutation runs on the player's own goroutine, one at a time,
// so the view controller and playback engine never need locks. Readers get
// immutable Snapshots.
//
// Example usage:
//
//	p, err := stagemap.New(ctx, stagemap.WithSource("events_timeline.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	p.OnChange(func(s stagemap.Snapshot) {
//	    fmt.Println(s.Panel.Month, s.Panel.CountLabel)
//	})
//
//	_ = p.SetMode(ctx, view.ModeHeat)
//	_ = p.Play(ctx)
package stagemap

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/minichart"
	"github.com/agentstation/stagemap/pkg/playback"
	"github.com/agentstation/stagemap/pkg/timeline"
	"github.com/agentstation/stagemap/pkg/view"
)

// Compile-time interface checks.
var (
	_ Player              = (*player)(nil)
	_ playback.Dispatcher = (*player)(nil)
)

// Player is one presentation session.
type Player interface {
	// Viewer provides read access to the session
	Viewer

	// Controls mutates the session
	Controls

	// Hooks provides access to change notifications
	Hooks

	// Close stops playback and the session loop.
	Close() error
}

// Viewer provides read access to the session.
type Viewer interface {
	Snapshot() Snapshot
	Status() view.Status
	// Err returns the load failure behind StatusError.
	Err() error
	Timeline() *timeline.Timeline
	// Chart lays out the mini-chart for the current month.
	Chart() *minichart.Chart
}

// player is the internal implementation of the Player interface.
type player struct {
	options *options
	logger  *zerolog.Logger

	// loaded once in New, immutable afterwards
	tl      *timeline.Timeline
	loadErr error

	// loop-confined
	controller *view.Controller
	engine     *playback.Engine
	chart      *minichart.Chart
	last       view.Change

	// serial loop
	cmds      chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	// published state
	mu       sync.RWMutex
	snapshot Snapshot
	version  uint64

	hooks *hooks
}

// New loads the timeline and starts the session loop. A load failure does
// not fail New: the player comes up in StatusError and Err reports why.
// Only invalid options return an error.
func New(ctx context.Context, opts ...Option) (Player, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "player", "", err)
	}

	p := &player{
		options: o,
		logger:  o.logger,
		cmds:    make(chan func()),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		hooks:   newHooks(),
	}

	p.tl, p.loadErr = p.load(ctx)
	if p.loadErr != nil {
		p.logger.Error().Err(p.loadErr).Str("source", o.source).Msg("Failed to load timeline")
		p.tl = timeline.New(nil)
	}

	p.controller = view.NewController(p.tl,
		view.WithHeat(o.heatEnabled),
		view.WithLogger(p.logger),
	)

	scheduler := o.scheduler
	if scheduler == nil {
		scheduler = playback.NewTickerScheduler(p)
	}
	p.engine = playback.New(p.controller, scheduler,
		playback.WithInterval(o.interval),
		playback.WithLogger(p.logger),
	)
	p.controller.SetInterrupter(p.engine)

	p.chart = minichart.FromTimeline(p.tl, p.controller.State().Index)
	p.controller.Subscribe(p.onViewChange)
	p.engine.OnStateChange(p.onPlaybackChange)

	p.last = p.controller.Current()
	p.publish()

	start, end := p.tl.Range()
	p.logger.Info().
		Str("status", string(p.Status())).
		Int("months", p.tl.Len()).
		Int("events", p.tl.TotalEvents()).
		Str("start_month", start).
		Str("end_month", end).
		Msg("Player ready")

	go p.run()
	return p, nil
}

func (p *player) load(ctx context.Context) (*timeline.Timeline, error) {
	if p.options.timeline != nil {
		return p.options.timeline, nil
	}
	if p.options.document != nil {
		return p.options.document.Build(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.options.loadTimeout)
	defer cancel()

	doc, err := p.options.loader.Load(ctx, p.options.source)
	if err != nil {
		return nil, err
	}
	return doc.Build(), nil
}

// Timeline returns the loaded timeline. It is empty after a load failure.
func (p *player) Timeline() *timeline.Timeline {
	return p.tl
}

// Status reports the display state.
func (p *player) Status() view.Status {
	if p.loadErr != nil {
		return view.StatusError
	}
	return p.controller.Status()
}

// Err returns the load failure, if any.
func (p *player) Err() error {
	return p.loadErr
}

// onViewChange is the player's view observer: it moves the mini-chart
// highlight and republishes.
func (p *player) onViewChange(ch view.Change) {
	p.chart.SetActive(ch.State.Index)
	p.last = ch
	p.publish()
}

func (p *player) onPlaybackChange(s playback.State) {
	p.logger.Debug().Str("playback", s.String()).Msg("Playback state changed")
	p.publish()
}
