package months

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/timeline"
)

func testDocument() *timeline.Document {
	return &timeline.Document{Timeline: []timeline.Frame{
		{Month: "2021-01", Events: []timeline.Event{
			{ID: "a", Name: "Hamlet Premiere", Lat: 51.5, Lng: -0.12},
			{ID: "b", Name: "Stage performance", Lat: 48.85, Lng: 2.35},
		}},
		{Month: "2021-02"},
		{Month: "2021-03", Events: []timeline.Event{
			{ID: "c", Name: "Funeral of a Tenor", Lat: 41.9, Lng: 12.5},
		}},
	}}
}

func TestBuild(t *testing.T) {
	rows := Build(testDocument().Build(), false)
	require.Len(t, rows, 3)

	want := Row{
		Index: 0,
		Month: "2021-01",
		Count: 2,
		Categories: map[timeline.Category]int{
			timeline.CategoryPremiere:    1,
			timeline.CategoryPerformance: 1,
		},
	}
	if diff := cmp.Diff(want, rows[0]); diff != "" {
		t.Errorf("first row mismatch (-want +got):\n%s", diff)
	}

	nonEmpty := Build(testDocument().Build(), true)
	require.Len(t, nonEmpty, 2)
	assert.Equal(t, 2, nonEmpty[1].Index, "indexes stay those of the full timeline")
}

func TestRowsTable(t *testing.T) {
	data := Build(testDocument().Build(), false).Table()
	assert.Equal(t, "#", data.Headers[0])
	assert.Len(t, data.Headers, 3+len(timeline.Categories()))
	assert.Equal(t, []string{"2", "2021-03", "1"}, data.Rows[2][:3])
}

func TestCommand(t *testing.T) {
	app := &application.Mock{
		DocumentFunc:     func(context.Context) (*timeline.Document, error) { return testDocument(), nil },
		OutputFormatFunc: func() string { return "json" },
	}

	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--non-empty"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var rows []Row
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	assert.Len(t, rows, 2)
}

func TestCommandLoadError(t *testing.T) {
	app := &application.Mock{
		DocumentFunc: func(context.Context) (*timeline.Document, error) {
			return nil, errors.NewLoadError("events_timeline.json", 0, errors.New("no such file"))
		},
	}
	cmd := NewCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(nil)
	err := cmd.ExecuteContext(context.Background())
	assert.True(t, errors.IsLoadError(err))
}
