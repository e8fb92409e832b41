package play

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/logging"
	"github.com/agentstation/stagemap/pkg/timeline"
	"github.com/agentstation/stagemap/pkg/view"
)

func TestNewModel(t *testing.T) {
	doc := &timeline.Document{Timeline: []timeline.Frame{
		{Month: "2021-01"},
		{Month: "2021-02", Events: []timeline.Event{{ID: "a", Name: "Recital", Lat: 48.85, Lng: 2.35}}},
	}}
	app := &application.Mock{
		DocumentFunc: func(context.Context) (*timeline.Document, error) { return doc, nil },
		IntervalFunc: func() time.Duration { return 400 * time.Millisecond },
	}

	m := NewModel(context.Background(), app, true, logging.NewNopLogger())
	assert.Equal(t, view.StatusReady, m.Status())
	assert.Equal(t, 1, m.State().Index, "opens on the first month with events")
	assert.Equal(t, 400*time.Millisecond, m.Interval())
	assert.False(t, m.Playing())
}

func TestNewModelLoadError(t *testing.T) {
	app := &application.Mock{
		DocumentFunc: func(context.Context) (*timeline.Document, error) {
			return nil, errors.NewLoadError("events_timeline.json", 500, nil)
		},
	}

	m := NewModel(context.Background(), app, false, logging.NewNopLogger())
	assert.Equal(t, view.StatusError, m.Status())
	assert.Contains(t, m.View(), "Error loading data")
}

func TestPlayLogger(t *testing.T) {
	assert.NotNil(t, playLogger(""))

	path := filepath.Join(t.TempDir(), "play.log")
	logger := playLogger(path)
	logger.Info().Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
