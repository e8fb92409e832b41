package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap"
	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/timeline"
)

var _ Application = (*Mock)(nil)

// Mock is an Application for tests. Nil function fields return zero values.
//
//	mock := &application.Mock{
//	    DocumentFunc: func(context.Context) (*timeline.Document, error) {
//	        return doc, nil
//	    },
//	}
type Mock struct {
	PlayerFunc       func(ctx context.Context) (stagemap.Player, error)
	DocumentFunc     func(ctx context.Context) (*timeline.Document, error)
	DataSourceFunc   func() string
	IntervalFunc     func() time.Duration
	HeatEnabledFunc  func() bool
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Player returns a player using the mock function or nil.
func (m *Mock) Player(ctx context.Context) (stagemap.Player, error) {
	if m.PlayerFunc != nil {
		return m.PlayerFunc(ctx)
	}
	return nil, nil
}

// Document returns a document using the mock function or an empty one.
func (m *Mock) Document(ctx context.Context) (*timeline.Document, error) {
	if m.DocumentFunc != nil {
		return m.DocumentFunc(ctx)
	}
	return &timeline.Document{}, nil
}

// DataSource returns the mock data source.
func (m *Mock) DataSource() string {
	if m.DataSourceFunc != nil {
		return m.DataSourceFunc()
	}
	return ""
}

// PlaybackInterval returns the mock interval or the default.
func (m *Mock) PlaybackInterval() time.Duration {
	if m.IntervalFunc != nil {
		return m.IntervalFunc()
	}
	return constants.DefaultPlaybackInterval
}

// HeatEnabled returns the mock setting, true by default.
func (m *Mock) HeatEnabled() bool {
	if m.HeatEnabledFunc != nil {
		return m.HeatEnabledFunc()
	}
	return true
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the mock output format, "table" by default.
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns the mock version.
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns a fixed commit.
func (m *Mock) Commit() string { return "unknown" }

// Date returns a fixed build date.
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns a fixed builder.
func (m *Mock) BuiltBy() string { return "test" }
