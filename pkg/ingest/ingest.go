// Package ingest converts a MusicBrainz event dump (one JSON object per line)
// into a month-grouped timeline document.
//
// An event is kept when its life-span begin date yields a month and its
// "held at" place relation carries coordinates; everything else is counted
// as skipped.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/logging"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// Stats counts what happened to each input line.
type Stats struct {
	// LinesRead counts lines that decoded as JSON. Blank and malformed
	// lines are not included.
	LinesRead int `json:"lines_read" yaml:"lines_read"`
	Events    int `json:"events" yaml:"events"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Malformed int `json:"malformed" yaml:"malformed"`
}

// Option configures a build.
type Option func(*builder)

// WithLogger sets the logger used for per-line warnings.
func WithLogger(l *zerolog.Logger) Option {
	return func(b *builder) {
		b.logger = l
	}
}

type builder struct {
	logger *zerolog.Logger
	months map[string][]timeline.Event
	stats  Stats
}

// Build reads NDJSON from r and returns the document and its stats.
func Build(ctx context.Context, r io.Reader, opts ...Option) (*timeline.Document, Stats, error) {
	b := &builder{
		logger: logging.FromContext(ctx),
		months: make(map[string][]timeline.Event),
	}
	for _, opt := range opts {
		opt(b)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxNDJSONLineSize)

	line := 0
	for scanner.Scan() {
		line++
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, b.stats, err
			}
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if !json.Valid(raw) {
			b.stats.Malformed++
			b.logger.Debug().Int("line", line).Msg("Skipping malformed line")
			continue
		}
		b.stats.LinesRead++
		b.add(raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, b.stats, &errors.ParseError{Format: "ndjson", Line: line + 1, Message: err.Error(), Err: err}
	}

	return b.document(), b.stats, nil
}

// BuildFile runs Build over the file at path.
func BuildFile(ctx context.Context, path string, opts ...Option) (*timeline.Document, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	doc, stats, err := Build(ctx, f, opts...)
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		pe.File = path
	}
	return doc, stats, err
}

func (b *builder) add(raw []byte) {
	var rec record
	if raw[0] != '{' || json.Unmarshal(raw, &rec) != nil {
		b.stats.Skipped++
		return
	}

	begin := rec.begin()
	month, ok := timeline.ParseMonth(begin)
	if !ok {
		b.stats.Skipped++
		return
	}

	place, ok := rec.heldAt()
	if !ok {
		b.stats.Skipped++
		return
	}
	lat, lng, ok := place.latLng()
	if !ok {
		b.stats.Skipped++
		return
	}

	date := begin
	if len(date) > 10 {
		date = date[:10]
	}
	city, country := place.cityCountry()

	b.months[month] = append(b.months[month], timeline.Event{
		ID:      str(rec.ID),
		Name:    str(rec.Name),
		Date:    date,
		Lat:     lat,
		Lng:     lng,
		City:    city,
		Country: country,
		Venue:   str(place.Name),
	})
	b.stats.Events++
}

func (b *builder) document() *timeline.Document {
	keys := make([]string, 0, len(b.months))
	for k := range b.months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	frames := make([]timeline.Frame, len(keys))
	for i, k := range keys {
		frames[i] = timeline.Frame{Month: k, Events: b.months[k]}
	}

	meta := &timeline.Meta{
		TotalLinesRead: b.stats.LinesRead,
		TotalEvents:    b.stats.Events,
		TotalMonths:    len(keys),
		Skipped:        b.stats.Skipped,
	}
	if len(keys) > 0 {
		meta.StartMonth = keys[0]
		meta.EndMonth = keys[len(keys)-1]
	}
	return &timeline.Document{Meta: meta, Timeline: frames}
}
