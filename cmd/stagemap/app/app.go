// Package app provides the application context and dependency management
// for the stagemap CLI: configuration, logging, the shared player session
// and lifecycle.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap"
	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/internal/cmd/output"
	"github.com/agentstation/stagemap/internal/transport"
	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/timeline"
)

var _ application.Application = (*App)(nil)

// App represents the stagemap application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// player is created lazily and shared by every command in the process.
	mu     sync.Mutex
	player stagemap.Player
}

// New creates an App with configuration loaded from the default locations.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// DataSource returns the configured dataset path or URL.
func (a *App) DataSource() string { return a.config.DataSource }

// PlaybackInterval returns the configured time spent on each month.
func (a *App) PlaybackInterval() time.Duration { return a.config.PlaybackInterval }

// HeatEnabled reports whether heat mode is offered.
func (a *App) HeatEnabled() bool { return a.config.HeatEnabled }

// OutputFormat returns the explicit format, or table on a terminal and json
// otherwise.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Player returns the shared session, loading the dataset on first use.
func (a *App) Player(ctx context.Context) (stagemap.Player, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.player != nil {
		return a.player, nil
	}

	loadCtx, cancel := context.WithTimeout(ctx, constants.LoadTimeout)
	defer cancel()

	p, err := stagemap.New(loadCtx,
		stagemap.WithSource(a.config.DataSource),
		stagemap.WithLoader(a.loader()),
		stagemap.WithPlaybackInterval(a.config.PlaybackInterval),
		stagemap.WithHeat(a.config.HeatEnabled),
		stagemap.WithLogger(a.logger),
	)
	if err != nil {
		return nil, errors.WrapResource("create", "player", "", err)
	}

	a.player = p
	return p, nil
}

// Document loads the configured dataset without starting a session.
func (a *App) Document(ctx context.Context) (*timeline.Document, error) {
	loadCtx, cancel := context.WithTimeout(ctx, constants.LoadTimeout)
	defer cancel()

	a.logger.Debug().Str("source", a.config.DataSource).Msg("Loading timeline document")
	doc, err := a.loader().Load(loadCtx, a.config.DataSource)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// loader fetches remote documents with the configured credential, if any.
func (a *App) loader() *timeline.Loader {
	if a.config.DataToken == "" {
		return timeline.NewLoader()
	}
	// Validate has already accepted the scheme.
	auth, _ := transport.ParseAuth(a.config.DataAuth)
	return transport.New(auth, a.config.DataToken).NewLoader()
}

// Shutdown closes the player session if one was started.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	p := a.player
	a.player = nil
	a.mu.Unlock()

	if p == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- p.Close() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errors.WrapResource("close", "player", "", ctx.Err())
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewConfigError("app", "config must not be nil", nil)
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithPlayer sets the session (useful for testing).
func WithPlayer(p stagemap.Player) Option {
	return func(a *App) error {
		a.player = p
		return nil
	}
}
