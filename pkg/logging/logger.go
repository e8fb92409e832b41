// Package logging provides structured logging for stagemap using zerolog.
// Terminals get human-readable console output; everything else gets JSON.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Int("month_index", 4).Msg("Month selected")
//
//	ctx := logging.WithMonth(ctx, "2021-04")
//	logging.FromContext(ctx).Debug().Msg("Rebuilding heat layer")
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu            sync.RWMutex
	defaultLogger = NewLoggerFromConfig(ConfigFromEnv())

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

// Default returns the default global logger.
func Default() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := defaultLogger
	return &l
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
	log.Logger = logger
}

// New creates a JSON logger writing to w at the global level.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return Default().Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return Default().Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return Default().Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return Default().Error()
}

// Err starts an error event carrying err.
func Err(err error) *zerolog.Event {
	return Default().Err(err)
}
