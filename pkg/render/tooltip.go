package render

import (
	"strconv"

	"github.com/agentstation/stagemap/pkg/timeline"
)

// Tooltip is the hover card for one marker.
type Tooltip struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Date   string `json:"date"`
	Venue  string `json:"venue"`
	Area   string `json:"area"`
	Coords string `json:"coords"`
}

// NewTooltip describes an event, falling back to "Unknown ..." for missing
// venue, city and country.
func NewTooltip(e timeline.Event) Tooltip {
	category := e.Category
	if category == "" {
		category = timeline.CategoryOther
	}
	return Tooltip{
		Name:   DisplayName(e.Name),
		Type:   category.String(),
		Date:   PlainText(e.Date),
		Venue:  orUnknown(e.Venue, "venue"),
		Area:   orUnknown(e.City, "city") + ", " + orUnknown(e.Country, "country"),
		Coords: coord(e.Lat) + ", " + coord(e.Lng),
	}
}

// Lines returns the tooltip as label/value rows after the name.
func (t Tooltip) Lines() [][2]string {
	return [][2]string{
		{"Type", t.Type},
		{"Date", t.Date},
		{"Venue", t.Venue},
		{"Area", t.Area},
		{"Coords", t.Coords},
	}
}

func orUnknown(s, what string) string {
	if s = PlainText(s); s == "" {
		return "Unknown " + what
	}
	return s
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', 5, 64)
}
