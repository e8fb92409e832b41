package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/stagemap/internal/server/command"
	"github.com/agentstation/stagemap/internal/server/response"
	"github.com/agentstation/stagemap/pkg/logging"
)

const maxCommandBody = 4 << 10

// HandleSelect handles POST /api/v1/select {index}.
func (h *Handlers) HandleSelect(w http.ResponseWriter, r *http.Request) {
	h.handleCommand(w, r, command.Select)
}

// HandleMode handles POST /api/v1/mode {mode}.
func (h *Handlers) HandleMode(w http.ResponseWriter, r *http.Request) {
	h.handleCommand(w, r, command.Mode)
}

// HandlePlay handles POST /api/v1/playback/play.
func (h *Handlers) HandlePlay(w http.ResponseWriter, r *http.Request) {
	h.handleCommand(w, r, command.Play)
}

// HandlePause handles POST /api/v1/playback/pause.
func (h *Handlers) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.handleCommand(w, r, command.Pause)
}

// HandleSpeed handles POST /api/v1/playback/speed {interval_ms}.
func (h *Handlers) HandleSpeed(w http.ResponseWriter, r *http.Request) {
	h.handleCommand(w, r, command.Speed)
}

// handleCommand decodes the optional JSON body, applies it as a command of
// type t and answers with the resulting snapshot.
func (h *Handlers) handleCommand(w http.ResponseWriter, r *http.Request, t command.Type) {
	var c command.Command
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBody))
	if err != nil {
		response.BadRequest(w, "Failed to read request body", err.Error())
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &c); err != nil {
			response.BadRequest(w, "Invalid JSON body", err.Error())
			return
		}
	}
	c.Type = t

	ctx := logging.WithOperation(r.Context(), string(t))
	if t == command.Mode {
		ctx = logging.WithMode(ctx, c.Mode)
	}
	if err := command.Apply(ctx, h.player, c); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("Command rejected")
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, h.player.Snapshot())
}
