// Package heat turns a month of events into density-compensated heat points.
//
// Sparse months are boosted so a handful of events still reads on the map,
// and the layer maximum is clamped so dense months do not wash out.
package heat

import (
	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// Boost returns the per-point weight for a month with n valid events.
func Boost(n int) float64 {
	switch {
	case n < 10:
		return 2.2
	case n < 30:
		return 1.6
	default:
		return 1.2
	}
}

// MaxIntensity returns the layer maximum for n valid events, clamped to
// [HeatMinMax, HeatMaxMax].
func MaxIntensity(n int) float64 {
	return float64(max(constants.HeatMinMax, min(constants.HeatMaxMax, n)))
}

// Point is one weighted location.
type Point struct {
	Lat       float64 `json:"lat" yaml:"lat"`
	Lng       float64 `json:"lng" yaml:"lng"`
	Intensity float64 `json:"intensity" yaml:"intensity"`
}

// Layer is the heat data for one month.
type Layer struct {
	Month  string  `json:"month" yaml:"month"`
	Points []Point `json:"points" yaml:"points"`
	Max    float64 `json:"max" yaml:"max"`
}

// Build computes the layer for a month. Events without finite coordinates
// are ignored and do not count towards the boost or the maximum.
func Build(month string, events []timeline.Event) *Layer {
	valid := make([]timeline.Event, 0, len(events))
	for _, e := range events {
		if e.HasFiniteCoords() {
			valid = append(valid, e)
		}
	}

	n := len(valid)
	weight := 1 * Boost(n)
	points := make([]Point, n)
	for i, e := range valid {
		points[i] = Point{Lat: e.Lat, Lng: e.Lng, Intensity: weight}
	}
	return &Layer{Month: month, Points: points, Max: MaxIntensity(n)}
}

// FromFrame builds the layer for a timeline frame.
func FromFrame(f timeline.Frame) *Layer {
	return Build(f.Month, f.Events)
}

// LatLngs returns the points as [lat, lng, intensity] triples, the shape
// leaflet.heat consumes.
func (l *Layer) LatLngs() [][3]float64 {
	out := make([][3]float64, len(l.Points))
	for i, p := range l.Points {
		out[i] = [3]float64{p.Lat, p.Lng, p.Intensity}
	}
	return out
}
