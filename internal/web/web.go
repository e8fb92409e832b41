// Package web embeds the browser page: an HTML shell, the Leaflet client
// script and its stylesheet.
package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/heat"
	"github.com/agentstation/stagemap/pkg/timeline"
)

//go:embed templates/*.html static/*
var content embed.FS

var indexTemplate = template.Must(template.ParseFS(content, "templates/index.html"))

// PageConfig is handed to the client script.
type PageConfig struct {
	Title              string            `json:"title"`
	APIPrefix          string            `json:"apiPrefix"`
	Center             [2]float64        `json:"center"`
	Zoom               int               `json:"zoom"`
	FlyToZoom          int               `json:"flyToZoom"`
	FlyToMS            int64             `json:"flyToMs"`
	MarkerRadius       int               `json:"markerRadius"`
	SpeedsMS           []int64           `json:"speedsMs"`
	Heat               heat.Options      `json:"heat"`
	Colors             map[string]string `json:"colors"`
	ControlKeyRequired bool              `json:"controlKeyRequired"`
}

// DefaultPageConfig returns the page settings for an API mounted at prefix.
func DefaultPageConfig(prefix string) PageConfig {
	speeds := make([]int64, len(constants.PlaybackSpeeds))
	for i, d := range constants.PlaybackSpeeds {
		speeds[i] = d.Milliseconds()
	}
	colors := make(map[string]string)
	for _, c := range timeline.Categories() {
		colors[string(c)] = c.Color()
	}
	return PageConfig{
		Title:        "Stage map",
		APIPrefix:    prefix,
		Center:       constants.OpeningCenter,
		Zoom:         constants.OpeningZoom,
		FlyToZoom:    constants.FlyToMinZoom,
		FlyToMS:      constants.FlyToDuration.Milliseconds(),
		MarkerRadius: constants.MarkerRadius,
		SpeedsMS:     speeds,
		Heat:         heat.DefaultOptions(),
		Colors:       colors,
	}
}

// RenderIndex writes the page.
func RenderIndex(w io.Writer, cfg PageConfig) error {
	return indexTemplate.Execute(w, cfg)
}

// Static serves the embedded script and stylesheet.
func Static() http.Handler {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
