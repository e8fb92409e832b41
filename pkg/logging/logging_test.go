package logging_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap/pkg/logging"
)

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARNING", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"trace", zerolog.TraceLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerFromConfigWritesFile(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	path := filepath.Join(t.TempDir(), "stagemap.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "warn",
		Format: "json",
		Output: path,
		Fields: map[string]any{"service": "stagemap"},
	})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "shown")
	assert.Contains(t, string(content), `"service":"stagemap"`)
	assert.NotContains(t, string(content), "hidden")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("STAGEMAP_LOG_LEVEL", "debug")
	t.Setenv("STAGEMAP_LOG_FORMAT", "json")
	t.Setenv("STAGEMAP_LOG_FIELDS", "env=test, region = eu")

	cfg := logging.ConfigFromEnv()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, map[string]any{"env": "test", "region": "eu"}, cfg.Fields)
}

func TestContextFields(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithMonth(ctx, "2021-04")
	ctx = logging.WithMode(ctx, "heat")
	ctx = logging.WithOperation(ctx, "select")
	ctx = logging.WithError(ctx, errors.New("boom"))
	ctx = logging.WithRequestID(ctx, "req-1")

	logging.FromContext(ctx).Info().Msg("month selected")

	tl.AssertContains(t, `"month":"2021-04"`)
	tl.AssertContains(t, `"mode":"heat"`)
	tl.AssertContains(t, `"operation":"select"`)
	tl.AssertContains(t, `"error":"boom"`)
	tl.AssertContains(t, "month selected")
	assert.Equal(t, "req-1", logging.RequestID(ctx))
	assert.Len(t, tl.Lines(), 1)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	assert.NotNil(t, logging.FromContext(nil))
	assert.NotNil(t, logging.Ctx(context.Background()))
	assert.Empty(t, logging.RequestID(context.Background()))
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)

	logging.Info().Str("source", "events_timeline.json").Msg("loaded")
	logging.Debug().Msg("details")

	tl.AssertContains(t, "loaded")
	tl.AssertContains(t, "details")
	tl.Clear()
	tl.AssertNotContains(t, "loaded")
}
