// Package constants provides shared constants used throughout the stagemap codebase.
// This includes timeouts, playback speeds, rendering limits, and file permissions
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the timeout for fetching a remote timeline document
	DefaultHTTPTimeout = 30 * time.Second

	// LoadTimeout bounds the whole startup load, including decoding
	LoadTimeout = 1 * time.Minute

	// ShutdownTimeout is how long the server waits for connections to drain
	ShutdownTimeout = 30 * time.Second

	// LoopShutdownTimeout is how long Close waits for the player loop to exit
	LoopShutdownTimeout = 5 * time.Second
)

// Playback constants
const (
	// DefaultPlaybackInterval is the default time spent on each month while playing
	DefaultPlaybackInterval = 800 * time.Millisecond

	// MinPlaybackInterval is the fastest cadence accepted from clients
	MinPlaybackInterval = 50 * time.Millisecond

	// MaxPlaybackInterval is the slowest cadence accepted from clients
	MaxPlaybackInterval = 10 * time.Second
)

// PlaybackSpeeds are the cadences offered by the speed selector, slowest first.
var PlaybackSpeeds = []time.Duration{
	1600 * time.Millisecond,
	800 * time.Millisecond,
	400 * time.Millisecond,
	200 * time.Millisecond,
}

// Rendering constants
const (
	// MaxListItems is the maximum number of event cards rendered for one month
	MaxListItems = 60

	// MaxAxisTicks is the maximum number of mini-chart axis ticks
	MaxAxisTicks = 8

	// FlyToMinZoom is the minimum zoom used when flying to a clicked marker
	FlyToMinZoom = 6

	// FlyToDuration is the camera animation length used when flying to a marker
	FlyToDuration = 600 * time.Millisecond

	// MarkerRadius is the radius of an event marker in screen pixels
	MarkerRadius = 6

	// OpeningZoom is the initial map zoom level
	OpeningZoom = 3
)

// OpeningCenter is the initial map center as latitude, longitude.
var OpeningCenter = [2]float64{20, 0}

// Heat layer constants
const (
	// HeatMinMax is the lowest value the heat layer maximum may take
	HeatMinMax = 6

	// HeatMaxMax is the highest value the heat layer maximum may take
	HeatMaxMax = 30
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Buffer sizes
const (
	// ChannelBufferSize is the default buffer size for channels
	ChannelBufferSize = 256

	// MaxNDJSONLineSize is the largest single NDJSON record accepted by ingest (16 MB)
	MaxNDJSONLineSize = 16 * 1024 * 1024
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for rendered payloads
	CacheTTL = 5 * time.Minute
)

// Path constants
const (
	// DefaultDataPath is the dataset read when no --data flag or config is given
	DefaultDataPath = "events_timeline.json"

	// DefaultIngestInput is the NDJSON dump read by the build command by default
	DefaultIngestInput = "event.json"
)
