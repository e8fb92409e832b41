package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/timeline"
)

func testApp() *application.Mock {
	doc := &timeline.Document{Timeline: []timeline.Frame{
		{Month: "2021-01"},
		{Month: "2021-02", Events: []timeline.Event{
			{ID: "a", Name: "Hamlet Premiere", Lat: 51.5, Lng: -0.12},
			{ID: "b", Name: "Recital", Lat: 48.85, Lng: 2.35},
		}},
		{Month: "2021-03", Events: []timeline.Event{
			{ID: "c", Name: "Funeral of a Tenor", Lat: 41.9, Lng: 12.5},
		}},
	}}
	return &application.Mock{
		DocumentFunc: func(context.Context) (*timeline.Document, error) { return doc, nil },
	}
}

func execute(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestResolveMonth(t *testing.T) {
	doc, err := testApp().Document(context.Background())
	require.NoError(t, err)
	tl := doc.Build()

	tests := []struct {
		in      string
		want    int
		errFunc func(error) bool
	}{
		{in: "", want: 1},
		{in: "0", want: 0},
		{in: "2", want: 2},
		{in: "2021-03", want: 2},
		{in: "3", errFunc: errors.IsValidationError},
		{in: "-1", errFunc: errors.IsValidationError},
		{in: "March", errFunc: errors.IsValidationError},
		{in: "2022-01", errFunc: errors.IsNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := resolveMonth(tl, tt.in)
			if tt.errFunc != nil {
				assert.True(t, tt.errFunc(err), "error = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChartCommand(t *testing.T) {
	out, err := execute(t, testApp(), "chart", "--month", "2021-03")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<svg"), out)
	assert.Contains(t, out, "2021-03")
}

func TestHeatCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heat.geojson")
	_, err := execute(t, testApp(), "heat", "-m", "1", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "2021-02", fc.Features[0].Properties["month"])
	assert.Equal(t, []float64{-0.12, 51.5}, fc.Features[0].Geometry.Point)
}

func TestExportEmptyTimeline(t *testing.T) {
	app := &application.Mock{}
	_, err := execute(t, app, "chart")
	assert.True(t, errors.IsNoData(err), "error = %v", err)
}
