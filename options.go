package stagemap

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/logging"
	"github.com/agentstation/stagemap/pkg/playback"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// options holds the player configuration.
type options struct {
	source      string
	document    *timeline.Document
	timeline    *timeline.Timeline
	loader      *timeline.Loader
	loadTimeout time.Duration
	interval    time.Duration
	heatEnabled bool
	scheduler   playback.Scheduler
	logger      *zerolog.Logger
}

// Option is a function that configures a Player.
type Option func(*options) error

func defaults() *options {
	return &options{
		source:      constants.DefaultDataPath,
		loader:      timeline.NewLoader(),
		loadTimeout: constants.LoadTimeout,
		interval:    constants.DefaultPlaybackInterval,
		heatEnabled: true,
		logger:      logging.Default(),
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithSource loads the timeline from a file path or http(s) URL.
func WithSource(source string) Option {
	return func(o *options) error {
		if source == "" {
			return errors.NewValidationError("source", source, "must not be empty")
		}
		o.source = source
		return nil
	}
}

// WithDocument uses an already decoded document instead of loading one.
func WithDocument(doc *timeline.Document) Option {
	return func(o *options) error {
		o.document = doc
		return nil
	}
}

// WithTimeline uses an already built timeline instead of loading one.
func WithTimeline(tl *timeline.Timeline) Option {
	return func(o *options) error {
		o.timeline = tl
		return nil
	}
}

// WithLoader replaces the document loader.
func WithLoader(l *timeline.Loader) Option {
	return func(o *options) error {
		o.loader = l
		return nil
	}
}

// WithPlaybackInterval sets how long playback stays on each month.
func WithPlaybackInterval(d time.Duration) Option {
	return func(o *options) error {
		if err := validateInterval(d); err != nil {
			return err
		}
		o.interval = d
		return nil
	}
}

// WithHeat declares whether the heat renderer is available.
func WithHeat(enabled bool) Option {
	return func(o *options) error {
		o.heatEnabled = enabled
		return nil
	}
}

// WithScheduler replaces the ticker-based playback scheduler.
func WithScheduler(s playback.Scheduler) Option {
	return func(o *options) error {
		o.scheduler = s
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) error {
		if l != nil {
			o.logger = l
		}
		return nil
	}
}

func validateInterval(d time.Duration) error {
	if d < constants.MinPlaybackInterval || d > constants.MaxPlaybackInterval {
		return &errors.ValidationError{
			Field:   "interval",
			Value:   d,
			Message: "must be between " + constants.MinPlaybackInterval.String() + " and " + constants.MaxPlaybackInterval.String(),
		}
	}
	return nil
}
