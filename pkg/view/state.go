package view

import (
	"fmt"
	"strings"

	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/heat"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// Mode selects how the current month is drawn.
type Mode string

// Rendering modes.
const (
	ModePoints Mode = "points"
	ModeHeat   Mode = "heat"
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	return string(m)
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePoints:
		return ModePoints, nil
	case ModeHeat:
		return ModeHeat, nil
	}
	return "", &errors.ValidationError{
		Field:   "mode",
		Value:   s,
		Message: fmt.Sprintf("must be %q or %q", ModePoints, ModeHeat),
	}
}

// Status is the overall display state of a session.
type Status string

// Display states.
const (
	StatusReady  Status = "ready"
	StatusNoData Status = "no-data"
	StatusError  Status = "error"
)

// State is the current month and rendering mode.
type State struct {
	Index int  `json:"index" yaml:"index"`
	Mode  Mode `json:"mode" yaml:"mode"`
}

// Cause records what triggered a Change.
type Cause string

// Change causes.
const (
	CauseInit     Cause = "init"
	CauseSelect   Cause = "select"
	CauseUser     Cause = "user"
	CausePlayback Cause = "playback"
	CauseMode     Cause = "mode"
)

// Change is delivered to observers after every successful operation. Heat
// is computed for State.Index in the same change and is nil in points mode.
type Change struct {
	State           State          `json:"state"`
	Frame           timeline.Frame `json:"frame"`
	Heat            *heat.Layer    `json:"heat,omitempty"`
	HeatUnavailable bool           `json:"heat_unavailable,omitempty"`
	Cause           Cause          `json:"cause"`
}

// ErrIndexOutOfRange is returned for month indexes outside the timeline.
var ErrIndexOutOfRange = errors.NewValidationError("index", nil, "month index out of range")
