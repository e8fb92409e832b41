package handlers

import (
	"context"
	"net/http"

	ws "github.com/agentstation/stagemap/internal/server/websocket"
)

// HandleWebSocket handles GET /api/v1/updates/ws. Clients receive every
// snapshot and may send commands as JSON text frames.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register(client)

	// The request context ends when the handler returns, so the read pump
	// gets its own.
	go client.WritePump()
	go client.ReadPump(context.WithoutCancel(r.Context()))
}

// HandleSSE handles GET /api/v1/updates/stream.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}
