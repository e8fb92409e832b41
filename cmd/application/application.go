// Package application provides the application interface for stagemap commands.
//
// Commands and the HTTP server accept this interface rather than the concrete
// App type, which keeps them testable with Mock.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            doc, err := app.Document(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... use doc
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// Application is what commands need from the app.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Player returns the shared presentation session, starting it on first
	// use. A dataset that fails to load still yields a Player in the error
	// state; only configuration problems return an error.
	Player(ctx context.Context) (stagemap.Player, error)

	// Document loads the configured dataset without starting a session.
	Document(ctx context.Context) (*timeline.Document, error)

	// DataSource returns the configured dataset path or URL.
	DataSource() string

	// PlaybackInterval returns the configured time spent on each month.
	PlaybackInterval() time.Duration

	// HeatEnabled reports whether heat mode is offered.
	HeatEnabled() bool

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
