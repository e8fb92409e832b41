package render

import "time"

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point is a position on screen, in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MapSurface is the map the markers are drawn over.
type MapSurface interface {
	// Project converts a geographic position to a screen point at the
	// current viewport.
	Project(LatLng) Point
	Zoom() float64
	FlyTo(target LatLng, zoom float64, duration time.Duration)
	// OnViewportChange registers fn for zoom, pan and reset events.
	OnViewportChange(fn func()) (unsubscribe func())
}

// PointerHandlers are the callbacks for one marker. Nil fields are ignored.
type PointerHandlers struct {
	Enter func(Point)
	Move  func(Point)
	Leave func()
	Click func()
}

// PointerSource delivers pointer interactions for marker keys.
type PointerSource interface {
	Subscribe(key string, h PointerHandlers) (unsubscribe func())
}
