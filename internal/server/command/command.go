// Package command decodes session commands shared by the REST endpoints
// and the WebSocket connection.
package command

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agentstation/stagemap"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/view"
)

// Type names a command.
type Type string

// Command types.
const (
	Select Type = "select"
	Mode   Type = "mode"
	Play   Type = "play"
	Pause  Type = "pause"
	Speed  Type = "speed"
)

// Command is one request to change the session.
type Command struct {
	Type       Type   `json:"type"`
	Index      *int   `json:"index,omitempty"`
	Mode       string `json:"mode,omitempty"`
	IntervalMS int64  `json:"interval_ms,omitempty"`
}

// Decode parses a JSON command.
func Decode(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return Command{}, errors.NewValidationError("command", nil, "malformed JSON: "+err.Error())
	}
	return c, nil
}

// Apply runs c against the session. A select always comes from a person
// (slider, chart bar or marker) and stops playback.
func Apply(ctx context.Context, p stagemap.Controls, c Command) error {
	switch c.Type {
	case Select:
		if c.Index == nil {
			return errors.NewValidationError("index", nil, "required")
		}
		return p.UserSelect(ctx, *c.Index)
	case Mode:
		m, err := view.ParseMode(c.Mode)
		if err != nil {
			return err
		}
		return p.SetMode(ctx, m)
	case Play:
		return p.Play(ctx)
	case Pause:
		return p.Pause(ctx)
	case Speed:
		if c.IntervalMS <= 0 {
			return errors.NewValidationError("interval_ms", c.IntervalMS, "must be positive")
		}
		return p.SetSpeed(ctx, time.Duration(c.IntervalMS)*time.Millisecond)
	default:
		return errors.NewValidationError("type", c.Type, "unknown command")
	}
}
