package handlers

import (
	"net/http"

	"github.com/agentstation/stagemap/internal/server/response"
	"github.com/agentstation/stagemap/pkg/view"
)

// HandleHealth handles GET /health: the process is up.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "stagemap",
		"version": h.version,
	})
}

// HandleReady handles GET /api/v1/ready. A failed dataset load answers
// 503; an empty dataset is ready.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if h.player.Status() == view.StatusError {
		response.ServiceUnavailable(w, "Timeline failed to load")
		return
	}
	snap := h.player.Snapshot()
	response.OK(w, map[string]any{
		"status":            "ready",
		"session":           snap.Status,
		"months":            snap.Months,
		"cache_items":       h.cache.ItemCount(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
