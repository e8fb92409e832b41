package ingest

import (
	"encoding/json"

	"github.com/agentstation/stagemap/pkg/timeline"
)

// record is the subset of a MusicBrainz event we read. Loosely typed
// fields stay raw so a bad value skips one event instead of the line.
type record struct {
	ID        *string         `json:"id"`
	Name      *string         `json:"name"`
	LifeSpan  json.RawMessage `json:"life-span"`
	Relations json.RawMessage `json:"relations"`
}

type relation struct {
	Type       string          `json:"type"`
	TargetType string          `json:"target-type"`
	Place      json.RawMessage `json:"place"`
}

type place struct {
	Name        *string         `json:"name"`
	Coordinates json.RawMessage `json:"coordinates"`
	Area        json.RawMessage `json:"area"`
}

type coordinates struct {
	Latitude  json.RawMessage `json:"latitude"`
	Longitude json.RawMessage `json:"longitude"`
}

type area struct {
	Name *string `json:"name"`
	ISO1 []any   `json:"iso-3166-1-codes"`
	ISO2 []any   `json:"iso-3166-2-codes"`
}

func (r record) begin() string {
	var ls struct {
		Begin *string `json:"begin"`
	}
	if json.Unmarshal(r.LifeSpan, &ls) != nil {
		return ""
	}
	return str(ls.Begin)
}

// heldAt returns the first place the event was held at.
func (r record) heldAt() (place, bool) {
	var rels []json.RawMessage
	if json.Unmarshal(r.Relations, &rels) != nil {
		return place{}, false
	}
	for _, raw := range rels {
		var rel relation
		if json.Unmarshal(raw, &rel) != nil {
			continue
		}
		if rel.Type != "held at" || rel.TargetType != "place" {
			continue
		}
		var p place
		if json.Unmarshal(rel.Place, &p) == nil && isObject(rel.Place) {
			return p, true
		}
	}
	return place{}, false
}

// latLng accepts numbers or numeric strings; both must be finite.
func (p place) latLng() (lat, lng float64, ok bool) {
	var c coordinates
	if !isObject(p.Coordinates) || json.Unmarshal(p.Coordinates, &c) != nil {
		return 0, 0, false
	}
	e := timeline.Event{Lat: timeline.ParseCoord(c.Latitude), Lng: timeline.ParseCoord(c.Longitude)}
	if !e.HasFiniteCoords() {
		return 0, 0, false
	}
	return e.Lat, e.Lng, true
}

// cityCountry reads the area name and the first ISO 3166-1 code, falling
// back to the first ISO 3166-2 code.
func (p place) cityCountry() (city, country string) {
	var a area
	if !isObject(p.Area) || json.Unmarshal(p.Area, &a) != nil {
		return "", ""
	}
	city = str(a.Name)
	country = firstString(a.ISO1)
	if country == "" {
		country = firstString(a.ISO2)
	}
	return city, country
}

func firstString(values []any) string {
	if len(values) == 0 {
		return ""
	}
	s, _ := values[0].(string)
	return s
}

func isObject(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
