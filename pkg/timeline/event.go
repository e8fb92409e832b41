package timeline

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Event is a single geolocated occurrence on the timeline.
type Event struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`           // Source identifier, may be empty
	Name     string   `json:"name" yaml:"name"`                           // Display name
	Date     string   `json:"date,omitempty" yaml:"date,omitempty"`       // YYYY-MM-DD (or shorter)
	Lat      float64  `json:"lat" yaml:"lat"`                             // NaN when the source had no usable value
	Lng      float64  `json:"lng" yaml:"lng"`                             // NaN when the source had no usable value
	City     string   `json:"city,omitempty" yaml:"city,omitempty"`       // Area name
	Country  string   `json:"country,omitempty" yaml:"country,omitempty"` // ISO code
	Venue    string   `json:"venue,omitempty" yaml:"venue,omitempty"`     // Place name
	Category Category `json:"type,omitempty" yaml:"type,omitempty"`       // Derived once on load

	// Month is the key of the frame holding the event.
	Month string `json:"-" yaml:"-"`
}

// Key returns the identity used to join events against rendered markers.
func (e Event) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return strings.Join([]string{e.Name, formatCoord(e.Lat), formatCoord(e.Lng), e.Date}, "-")
}

// HasFiniteCoords reports whether both coordinates are usable numbers.
func (e Event) HasFiniteCoords() bool {
	return isFinite(e.Lat) && isFinite(e.Lng)
}

// eventJSON mirrors Event with raw coordinates so that null, missing or
// quoted values can be accepted.
type eventJSON struct {
	ID       *string         `json:"id"`
	Name     *string         `json:"name"`
	Date     *string         `json:"date"`
	Lat      json.RawMessage `json:"lat"`
	Lng      json.RawMessage `json:"lng"`
	City     *string         `json:"city"`
	Country  *string         `json:"country"`
	Venue    *string         `json:"venue"`
	Category Category        `json:"type"`
}

// UnmarshalJSON decodes an event, mapping unusable coordinates to NaN and
// null strings to empty ones.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Event{
		ID:       deref(raw.ID),
		Name:     deref(raw.Name),
		Date:     deref(raw.Date),
		Lat:      ParseCoord(raw.Lat),
		Lng:      ParseCoord(raw.Lng),
		City:     deref(raw.City),
		Country:  deref(raw.Country),
		Venue:    deref(raw.Venue),
		Category: raw.Category,
	}
	return nil
}

// MarshalJSON encodes non-finite coordinates as null.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	return json.Marshal(struct {
		plain
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}{plain(e), finiteOrNil(e.Lat), finiteOrNil(e.Lng)})
}

// ParseCoord reads a JSON coordinate that may be a number, a numeric
// string, null or absent. Anything unusable becomes NaN.
func ParseCoord(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return math.NaN()
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteOrNil(f float64) *float64 {
	if !isFinite(f) {
		return nil
	}
	return &f
}

func formatCoord(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
