package render

import (
	"github.com/agentstation/stagemap/pkg/heat"
	"github.com/agentstation/stagemap/pkg/view"
)

// Display headline and message for the non-ready states.
const (
	NoDataTitle   = "No data"
	NoDataMessage = "Timeline is empty."
	ErrorTitle    = "Error loading data"
	ErrorMessage  = "Check the server log for details."
)

// Display is what the month label and list area show for a status.
type Display struct {
	Status  view.Status `json:"status"`
	Title   string      `json:"title"`
	Message string      `json:"message,omitempty"`
}

// DisplayFor returns the display for status. In the ready state the title
// is the current month.
func DisplayFor(status view.Status, month string) Display {
	switch status {
	case view.StatusNoData:
		return Display{Status: status, Title: NoDataTitle, Message: NoDataMessage}
	case view.StatusError:
		return Display{Status: status, Title: ErrorTitle, Message: ErrorMessage}
	default:
		return Display{Status: view.StatusReady, Title: month}
	}
}

// Panel is everything outside the map that follows the current month.
type Panel struct {
	Display         Display     `json:"display"`
	State           view.State  `json:"state"`
	Month           string      `json:"month"`
	CountLabel      string      `json:"count_label"`
	List            List        `json:"list"`
	Heat            *heat.Layer `json:"heat,omitempty"`
	HeatUnavailable bool        `json:"heat_unavailable,omitempty"`
}

// NewPanel renders a view change for a ready session.
func NewPanel(ch view.Change) Panel {
	return Panel{
		Display:         DisplayFor(view.StatusReady, ch.Frame.Month),
		State:           ch.State,
		Month:           ch.Frame.Month,
		CountLabel:      CountLabel(ch.Frame.Count()),
		List:            NewList(ch.Frame.Events),
		Heat:            ch.Heat,
		HeatUnavailable: ch.HeatUnavailable,
	}
}

// StatusPanel renders the no-data or error state.
func StatusPanel(status view.Status) Panel {
	d := DisplayFor(status, "")
	return Panel{
		Display: d,
		State:   view.State{Mode: view.ModePoints},
		List:    List{Message: d.Message},
	}
}
