package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/agentstation/stagemap/internal/server/cache"
	"github.com/agentstation/stagemap/internal/server/response"
	"github.com/agentstation/stagemap/pkg/heat"
	"github.com/agentstation/stagemap/pkg/minichart"
)

// HandleMiniChart handles GET /api/v1/minichart.svg with the current month
// highlighted. The chart is laid out once and cached under its own active
// bar, so a month change mid-request cannot file it under the wrong key.
func (h *Handlers) HandleMiniChart(w http.ResponseWriter, _ *http.Request) {
	chart := h.player.Chart()
	p, err := h.cache.GetOrRender(cache.ChartKey(chart.Active()), func() (cache.Payload, error) {
		var buf bytes.Buffer
		err := minichart.RenderSVG(&buf, chart)
		return cache.Payload{ContentType: "image/svg+xml", Body: buf.Bytes()}, err
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to render mini-chart")
		response.InternalError(w, err)
		return
	}
	writePayload(w, p)
}

// HandleHeatGeoJSON handles GET /api/v1/heat.geojson?month=i. Without a
// month parameter it uses the current month.
func (h *Handlers) HandleHeatGeoJSON(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		raw = strconv.Itoa(h.player.Snapshot().State.Index)
	}
	i, frame, err := h.frame(raw)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	p, err := h.cache.GetOrRender(cache.HeatKey(i), func() (cache.Payload, error) {
		body, err := heat.FromFrame(frame).MarshalGeoJSON()
		return cache.Payload{ContentType: "application/geo+json", Body: body}, err
	})
	if err != nil {
		h.logger.Error().Err(err).Int("month_index", i).Msg("Failed to render heat GeoJSON")
		response.InternalError(w, err)
		return
	}
	writePayload(w, p)
}
