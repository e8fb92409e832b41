package tui

import (
	"time"

	"github.com/agentstation/stagemap/pkg/render"
)

// surface is an equirectangular projection onto a grid of terminal cells.
type surface struct {
	width, height int
	center        render.LatLng
	viewport      map[int]func()
	nextID        int
}

var _ render.MapSurface = (*surface)(nil)

func newSurface(width, height int) *surface {
	return &surface{width: width, height: height, viewport: make(map[int]func())}
}

// Project maps a position to a cell; X is the column and Y the row.
func (s *surface) Project(p render.LatLng) render.Point {
	return render.Point{
		X: (p.Lng + 180) / 360 * float64(s.width-1),
		Y: (90 - p.Lat) / 180 * float64(s.height-1),
	}
}

func (s *surface) Zoom() float64 { return 1 }

// FlyTo only records the target; the whole world is always in view.
func (s *surface) FlyTo(target render.LatLng, _ float64, _ time.Duration) {
	s.center = target
}

func (s *surface) OnViewportChange(fn func()) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.viewport[id] = fn
	return func() { delete(s.viewport, id) }
}

// resize changes the grid and reprojects.
func (s *surface) resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = max(width, 2), max(height, 2)
	for _, fn := range s.viewport {
		fn()
	}
}

// cell rounds a point to grid coordinates, reporting false when it falls
// outside the grid.
func (s *surface) cell(p render.Point) (col, row int, ok bool) {
	col, row = int(p.X+0.5), int(p.Y+0.5)
	return col, row, col >= 0 && col < s.width && row >= 0 && row < s.height
}
