// Package playback advances a view through its months on a timer.
//
// The Engine is a two-state machine (stopped, playing) over a cancellable
// scheduled task. Like the view controller it is confined to one goroutine;
// a Scheduler is responsible for delivering ticks onto that goroutine.
package playback

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/logging"
)

// State is the playback state.
type State int

// Playback states.
const (
	Stopped State = iota
	Playing
)

// String returns the string representation of a State.
func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "playing":
		*s = Playing
	case "stopped":
		*s = Stopped
	default:
		return errors.NewValidationError("playback", string(text), "must be playing or stopped")
	}
	return nil
}

// Stepper is what playback drives.
type Stepper interface {
	// Next moves one month forward and returns the new index. It returns
	// false without changing anything when already on the last month.
	Next() (int, bool)
	Len() int
}

// Engine drives a Stepper at a fixed interval.
type Engine struct {
	target    Stepper
	scheduler Scheduler
	interval  time.Duration
	state     State

	// generation invalidates ticks from a cancelled task that were
	// already queued when Stop returned.
	generation uint64
	handle     Handle

	observers []func(State)
	logger    *zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithInterval sets the initial interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates a stopped engine.
func New(target Stepper, scheduler Scheduler, opts ...Option) *Engine {
	e := &Engine{
		target:    target,
		scheduler: scheduler,
		interval:  constants.DefaultPlaybackInterval,
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Interval returns the configured interval.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// OnStateChange registers an observer for state transitions.
func (e *Engine) OnStateChange(fn func(State)) (unsubscribe func()) {
	e.observers = append(e.observers, fn)
	idx := len(e.observers) - 1
	return func() {
		if idx < len(e.observers) {
			e.observers[idx] = nil
		}
	}
}

// Start begins playback. It does nothing when already playing.
func (e *Engine) Start() {
	if e.state == Playing {
		return
	}
	e.generation++
	gen := e.generation
	e.handle = e.scheduler.Every(e.interval, func() { e.tick(gen) })
	e.setState(Playing)
	e.logger.Debug().Dur("interval", e.interval).Msg("Playback started")
}

// Stop ends playback. It is idempotent, and once it returns no tick from
// the previous task will advance the target.
func (e *Engine) Stop() {
	if e.state == Stopped {
		return
	}
	e.generation++
	if e.handle != nil {
		e.handle.Cancel()
		e.handle = nil
	}
	e.setState(Stopped)
	e.logger.Debug().Msg("Playback stopped")
}

// SetInterval changes the interval. While playing, the task is re-armed at
// the new interval without advancing.
func (e *Engine) SetInterval(d time.Duration) error {
	if d <= 0 {
		return &errors.ValidationError{
			Field:   "interval",
			Value:   d,
			Message: "playback interval must be positive",
		}
	}
	e.interval = d
	if e.state == Playing {
		e.Stop()
		e.Start()
	}
	return nil
}

func (e *Engine) tick(gen uint64) {
	if gen != e.generation || e.state != Playing {
		return
	}
	next, ok := e.target.Next()
	if !ok || next >= e.target.Len()-1 {
		e.Stop()
	}
}

func (e *Engine) setState(s State) {
	e.state = s
	for _, fn := range e.observers {
		if fn != nil {
			fn(s)
		}
	}
}
