// Package report writes a markdown summary of a timeline document.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/stagemap/pkg/heat"
	"github.com/agentstation/stagemap/pkg/render"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// DefaultTop is how many of the busiest months are listed.
const DefaultTop = 10

// Options tunes the report.
type Options struct {
	Title string
	// Top is the number of busiest months to list; zero lists none.
	Top int
	// Months adds a row for every month.
	Months bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{Title: "Stage map report", Top: DefaultTop}
}

// Write renders the report for doc to w.
func Write(w io.Writer, doc *timeline.Document, opts Options) error {
	tl := doc.Build()
	start, end := tl.Range()

	m := md.NewMarkdown(w).H1(opts.Title).LF()

	if tl.Empty() {
		m.PlainText(render.NoDataMessage).LF()
		return m.Build()
	}

	m.BulletList(
		fmt.Sprintf("%s %s to %s", md.Bold("Range:"), start, end),
		fmt.Sprintf("%s %d", md.Bold("Months:"), tl.Len()),
		fmt.Sprintf("%s %d", md.Bold("Events:"), tl.TotalEvents()),
	).LF()

	if doc.Meta != nil {
		m.PlainTextf("Built from %d input records; %d skipped.", doc.Meta.TotalLinesRead, doc.Meta.Skipped).LF()
	}

	m.H2("Events by category").LF()
	counts := tl.CategoryCounts()
	var rows [][]string
	for _, c := range timeline.Categories() {
		rows = append(rows, []string{c.String(), strconv.Itoa(counts[c]), md.Code(c.Color())})
	}
	m.Table(md.TableSet{Header: []string{"Category", "Events", "Colour"}, Rows: rows}).LF()

	if opts.Top > 0 {
		m.H2("Busiest months").LF()
		m.Table(md.TableSet{
			Header: []string{"Month", "Events", "Heat max"},
			Rows:   busiest(tl, opts.Top),
		}).LF()
	}

	if opts.Months {
		m.H2("All months").LF()
		m.Table(md.TableSet{Header: []string{"Month", "Events", ""}, Rows: monthRows(tl)}).LF()
	}

	return m.Build()
}

// busiest returns the top n months by event count, earliest first on ties.
func busiest(tl *timeline.Timeline, n int) [][]string {
	frames := slices.Clone(tl.Frames())
	slices.SortStableFunc(frames, func(a, b timeline.Frame) int {
		return cmp.Compare(b.Count(), a.Count())
	})
	frames = frames[:min(n, len(frames))]

	rows := make([][]string, 0, len(frames))
	for _, f := range frames {
		if f.Count() == 0 {
			break
		}
		layer := heat.FromFrame(f)
		rows = append(rows, []string{f.Month, strconv.Itoa(f.Count()), strconv.FormatFloat(layer.Max, 'f', 0, 64)})
	}
	return rows
}

func monthRows(tl *timeline.Timeline) [][]string {
	peak := 1
	for _, mc := range tl.Counts() {
		peak = max(peak, mc.Count)
	}
	rows := make([][]string, 0, tl.Len())
	for _, mc := range tl.Counts() {
		bar := strings.Repeat("█", (mc.Count*20+peak-1)/peak)
		rows = append(rows, []string{mc.Month, strconv.Itoa(mc.Count), bar})
	}
	return rows
}
