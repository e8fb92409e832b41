package render

import (
	"math"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/timeline"
	"github.com/agentstation/stagemap/pkg/view"
)

// tooltipOffset is the distance between the pointer and the tooltip corner.
const tooltipOffset = 14

// Marker is one drawn event.
type Marker struct {
	Key    string         `json:"key"`
	Event  timeline.Event `json:"event"`
	Pos    Point          `json:"pos"`
	Color  string         `json:"color"`
	Radius float64        `json:"radius"`
}

// TooltipState is the tooltip as currently shown.
type TooltipState struct {
	Visible bool    `json:"visible"`
	Key     string  `json:"key,omitempty"`
	Content Tooltip `json:"content"`
	Pos     Point   `json:"pos"`
}

// Markers keeps one marker per event of the current month on a MapSurface.
// It joins events to markers by Event.Key, so markers that survive a month
// change keep their identity.
type Markers struct {
	surface MapSurface
	pointer PointerSource

	markers map[string]*markerEntry
	order   []string
	hidden  bool
	tooltip TooltipState

	unsubViewport func()
}

type markerEntry struct {
	marker Marker
	unsub  func()
}

// NewMarkers creates an empty marker layer. pointer may be nil.
func NewMarkers(surface MapSurface, pointer PointerSource) *Markers {
	m := &Markers{
		surface: surface,
		pointer: pointer,
		markers: make(map[string]*markerEntry),
	}
	m.unsubViewport = surface.OnViewportChange(m.Reproject)
	return m
}

// Apply redraws for a view change. In heat mode the layer is hidden and
// left untouched; otherwise the month's events are joined against the
// current markers.
func (m *Markers) Apply(ch view.Change) {
	if ch.State.Mode == view.ModeHeat {
		m.hidden = true
		m.hideTooltip()
		return
	}
	m.hidden = false
	m.join(ch.Frame.Events)
}

// join applies enter, update and exit for the given events.
func (m *Markers) join(events []timeline.Event) {
	seen := make(map[string]bool, len(events))
	order := make([]string, 0, len(events))

	for _, e := range events {
		key := e.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		order = append(order, key)

		if entry, ok := m.markers[key]; ok {
			entry.marker.Event = e
			entry.marker.Color = colorFor(e)
			continue
		}
		m.enter(key, e)
	}

	for key, entry := range m.markers {
		if !seen[key] {
			m.exit(key, entry)
		}
	}
	m.order = order
	m.Reproject()
}

func (m *Markers) enter(key string, e timeline.Event) {
	entry := &markerEntry{marker: Marker{
		Key:    key,
		Event:  e,
		Color:  colorFor(e),
		Radius: constants.MarkerRadius,
	}}
	if m.pointer != nil {
		entry.unsub = m.pointer.Subscribe(key, PointerHandlers{
			Enter: func(p Point) { m.showTooltip(entry.marker.Event, p) },
			Move:  m.moveTooltip,
			Leave: m.hideTooltip,
			Click: func() { m.flyTo(entry.marker.Event) },
		})
	}
	m.markers[key] = entry
}

func (m *Markers) exit(key string, entry *markerEntry) {
	if entry.unsub != nil {
		entry.unsub()
	}
	if m.tooltip.Visible && key == m.tooltip.Key {
		m.hideTooltip()
	}
	delete(m.markers, key)
}

// Reproject moves every marker to its screen position for the current
// viewport.
func (m *Markers) Reproject() {
	for _, entry := range m.markers {
		e := entry.marker.Event
		if !e.HasFiniteCoords() {
			entry.marker.Pos = Point{X: math.NaN(), Y: math.NaN()}
			continue
		}
		entry.marker.Pos = m.surface.Project(LatLng{Lat: e.Lat, Lng: e.Lng})
	}
}

// Markers returns the drawn markers in event order. It is empty while the
// layer is hidden.
func (m *Markers) Markers() []Marker {
	if m.hidden {
		return nil
	}
	out := make([]Marker, 0, len(m.order))
	for _, key := range m.order {
		if entry, ok := m.markers[key]; ok {
			out = append(out, entry.marker)
		}
	}
	return out
}

// Hidden reports whether the layer is hidden for heat mode.
func (m *Markers) Hidden() bool {
	return m.hidden
}

// Tooltip returns the tooltip state.
func (m *Markers) Tooltip() TooltipState {
	return m.tooltip
}

// Close detaches the layer from its surface and pointer source.
func (m *Markers) Close() {
	if m.unsubViewport != nil {
		m.unsubViewport()
		m.unsubViewport = nil
	}
	for key, entry := range m.markers {
		m.exit(key, entry)
	}
	m.order = nil
}

func (m *Markers) showTooltip(e timeline.Event, p Point) {
	m.tooltip = TooltipState{Visible: true, Key: e.Key(), Content: NewTooltip(e)}
	m.moveTooltip(p)
}

func (m *Markers) moveTooltip(p Point) {
	m.tooltip.Pos = Point{X: p.X + tooltipOffset, Y: p.Y + tooltipOffset}
}

func (m *Markers) hideTooltip() {
	m.tooltip.Visible = false
}

func (m *Markers) flyTo(e timeline.Event) {
	zoom := math.Max(m.surface.Zoom(), constants.FlyToMinZoom)
	m.surface.FlyTo(LatLng{Lat: e.Lat, Lng: e.Lng}, zoom, constants.FlyToDuration)
}

func colorFor(e timeline.Event) string {
	if e.Category == "" {
		return timeline.DefaultColor
	}
	return e.Category.Color()
}
