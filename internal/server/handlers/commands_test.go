package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap"
	"github.com/agentstation/stagemap/pkg/logging"
	"github.com/agentstation/stagemap/pkg/playback"
	"github.com/agentstation/stagemap/pkg/timeline"
)

func TestRejectedCommandLogsOperation(t *testing.T) {
	p, err := stagemap.New(context.Background(),
		stagemap.WithTimeline(timeline.New([]timeline.Frame{{Month: "2021-01"}, {Month: "2021-02"}})),
		stagemap.WithScheduler(playback.NewManualScheduler()),
		stagemap.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	h, _ := newChartHandlers(t, p)

	tl := logging.NewTestLogger(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mode", strings.NewReader(`{"mode":"satellite"}`))
	req = req.WithContext(logging.WithLogger(req.Context(), tl.Logger))

	rec := httptest.NewRecorder()
	h.HandleMode(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	tl.AssertContains(t, `"operation":"mode"`)
	tl.AssertContains(t, `"mode":"satellite"`)
	tl.AssertContains(t, "Command rejected")

	tl.Clear()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/select", strings.NewReader(`{"index":1}`))
	req = req.WithContext(logging.WithLogger(req.Context(), tl.Logger))
	rec = httptest.NewRecorder()
	h.HandleSelect(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	tl.AssertNotContains(t, "Command rejected")
}
