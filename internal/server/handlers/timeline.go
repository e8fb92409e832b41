package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/agentstation/stagemap/internal/server/cache"
	"github.com/agentstation/stagemap/internal/server/response"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/render"
	"github.com/agentstation/stagemap/pkg/timeline"
	"github.com/agentstation/stagemap/pkg/view"
)

// TimelineSummary describes the loaded dataset.
type TimelineSummary struct {
	Status     view.Status               `json:"status"`
	Months     []timeline.MonthCount     `json:"months"`
	Total      int                       `json:"total"`
	StartMonth string                    `json:"start_month,omitempty"`
	EndMonth   string                    `json:"end_month,omitempty"`
	Categories map[timeline.Category]int `json:"categories"`
}

// MonthDetail is one month with its events.
type MonthDetail struct {
	Index      int              `json:"index"`
	Month      string           `json:"month"`
	CountLabel string           `json:"count_label"`
	Events     []timeline.Event `json:"events"`
}

// HandleTimeline handles GET /api/v1/timeline.
func (h *Handlers) HandleTimeline(w http.ResponseWriter, _ *http.Request) {
	tl := h.player.Timeline()
	start, end := tl.Range()
	response.OK(w, TimelineSummary{
		Status:     h.player.Status(),
		Months:     tl.Counts(),
		Total:      tl.TotalEvents(),
		StartMonth: start,
		EndMonth:   end,
		Categories: tl.CategoryCounts(),
	})
}

// HandleState handles GET /api/v1/state.
func (h *Handlers) HandleState(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.player.Snapshot())
}

// HandleMonth handles GET /api/v1/months/{i}.
func (h *Handlers) HandleMonth(w http.ResponseWriter, r *http.Request) {
	i, frame, err := h.frame(r.PathValue("i"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	p, err := h.cache.GetOrRender(cache.MonthKey(i), func() (cache.Payload, error) {
		body, err := json.Marshal(response.Success(MonthDetail{
			Index:      i,
			Month:      frame.Month,
			CountLabel: render.CountLabel(frame.Count()),
			Events:     frame.Events,
		}))
		return cache.Payload{ContentType: "application/json", Body: body}, err
	})
	if err != nil {
		h.logger.Error().Err(err).Int("month_index", i).Msg("Failed to render month")
		response.InternalError(w, err)
		return
	}
	writePayload(w, p)
}

// HandleMonthList handles GET /api/v1/months/{i}/list, the event list as
// an HTML fragment.
func (h *Handlers) HandleMonthList(w http.ResponseWriter, r *http.Request) {
	i, frame, err := h.frame(r.PathValue("i"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	p, err := h.cache.GetOrRender(cache.ListKey(i), func() (cache.Payload, error) {
		var buf bytes.Buffer
		err := render.ListHTML(&buf, render.NewList(frame.Events))
		return cache.Payload{ContentType: "text/html; charset=utf-8", Body: buf.Bytes()}, err
	})
	if err != nil {
		h.logger.Error().Err(err).Int("month_index", i).Msg("Failed to render event list")
		response.InternalError(w, err)
		return
	}
	writePayload(w, p)
}

// frame resolves a month index path value.
func (h *Handlers) frame(raw string) (int, timeline.Frame, error) {
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, timeline.Frame{}, errors.NewValidationError("index", raw, "must be an integer")
	}
	frame, ok := h.player.Timeline().Frame(i)
	if !ok {
		return 0, timeline.Frame{}, errors.NewNotFoundError("month", raw)
	}
	return i, frame, nil
}

func writePayload(w http.ResponseWriter, p cache.Payload) {
	w.Header().Set("Content-Type", p.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(p.Body)
}
