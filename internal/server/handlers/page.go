package handlers

import (
	"bytes"
	"net/http"

	"github.com/agentstation/stagemap/internal/server/response"
	"github.com/agentstation/stagemap/internal/web"
)

// HandleIndex handles GET /, the map page.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		response.NotFound(w, "Not found", r.URL.Path)
		return
	}
	var buf bytes.Buffer
	if err := web.RenderIndex(&buf, h.page); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render page")
		response.InternalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
