package timeline

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap/pkg/errors"
)

func sampleFrames() []Frame {
	return []Frame{
		{Month: "2020-12"},
		{Month: "2021-01", Events: []Event{{Name: "Hamlet Premiere", Lat: 51.5, Lng: -0.12, Date: "2021-01-04"}}},
		{Month: "2021-02", Events: []Event{
			{ID: "a", Name: "Funeral of X", Lat: 1, Lng: 2},
			{ID: "b", Name: "Gala", Lat: 3, Lng: 4},
		}},
	}
}

func TestNewClassifiesOnce(t *testing.T) {
	frames := sampleFrames()
	tl := New(frames)

	f, ok := tl.Frame(1)
	require.True(t, ok)
	assert.Equal(t, CategoryPremiere, f.Events[0].Category)
	assert.Equal(t, "2021-01", f.Events[0].Month)

	// the input is copied, not aliased
	assert.Empty(t, frames[1].Events[0].Category)

	empty, ok := tl.Frame(0)
	require.True(t, ok)
	assert.NotNil(t, empty.Events)
	assert.Equal(t, 0, empty.Count())
}

func TestTimelineQueries(t *testing.T) {
	tl := New(sampleFrames())

	assert.Equal(t, 3, tl.Len())
	assert.False(t, tl.Empty())
	assert.Equal(t, 3, tl.TotalEvents())
	assert.Equal(t, 1, tl.FirstNonEmpty())

	start, end := tl.Range()
	assert.Equal(t, "2020-12", start)
	assert.Equal(t, "2021-02", end)

	want := []MonthCount{{"2020-12", 0}, {"2021-01", 1}, {"2021-02", 2}}
	if diff := cmp.Diff(want, tl.Counts()); diff != "" {
		t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
	}

	i, ok := tl.IndexOf("2021-02")
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = tl.IndexOf("1999-01")
	assert.False(t, ok)

	_, ok = tl.Frame(3)
	assert.False(t, ok)
	_, ok = tl.Frame(-1)
	assert.False(t, ok)

	cats := tl.CategoryCounts()
	assert.Equal(t, 1, cats[CategoryPremiere])
	assert.Equal(t, 1, cats[CategoryFuneral])
	assert.Equal(t, 1, cats[CategoryOther])
}

func TestEmptyTimeline(t *testing.T) {
	tl := New(nil)
	assert.True(t, tl.Empty())
	assert.Equal(t, 0, tl.FirstNonEmpty())
	start, end := tl.Range()
	assert.Empty(t, start)
	assert.Empty(t, end)
	assert.Empty(t, tl.Counts())

	var nilTL *Timeline
	assert.Equal(t, 0, nilTL.Len())
	assert.Equal(t, 0, nilTL.TotalEvents())
}

func TestFirstNonEmptyAllEmpty(t *testing.T) {
	tl := New([]Frame{{Month: "2021-01"}, {Month: "2021-02"}})
	assert.Equal(t, 0, tl.FirstNonEmpty())
}

func TestEventKey(t *testing.T) {
	assert.Equal(t, "abc", Event{ID: "abc", Name: "x"}.Key())
	assert.Equal(t, "Tosca-41.9-12.5-1900-01-14",
		Event{Name: "Tosca", Lat: 41.9, Lng: 12.5, Date: "1900-01-14"}.Key())
}

func TestDecode(t *testing.T) {
	t.Run("missing fields default to empty", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(`{}`))
		require.NoError(t, err)
		assert.NotNil(t, doc.Timeline)
		assert.Empty(t, doc.Timeline)
		assert.Nil(t, doc.Meta)

		doc, err = Decode(strings.NewReader(`{"timeline":[{"month":"2021-01"}]}`))
		require.NoError(t, err)
		tl := doc.Build()
		f, _ := tl.Frame(0)
		assert.Empty(t, f.Events)
	})

	t.Run("coordinates", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(`{"timeline":[{"month":"2021-01","events":[
			{"id":null,"name":"A","lat":"48.85","lng":2.35},
			{"name":"B","lat":null,"lng":1},
			{"name":"C","lng":1}
		]}]}`))
		require.NoError(t, err)
		events := doc.Timeline[0].Events
		require.Len(t, events, 3)

		assert.Empty(t, events[0].ID)
		assert.InDelta(t, 48.85, events[0].Lat, 1e-9)
		assert.True(t, events[0].HasFiniteCoords())
		assert.True(t, math.IsNaN(events[1].Lat))
		assert.False(t, events[1].HasFiniteCoords())
		assert.False(t, events[2].HasFiniteCoords())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"timeline":`))
		var pe *errors.ParseError
		assert.ErrorAs(t, err, &pe)
	})
}

func TestDocumentEncodeRoundTrip(t *testing.T) {
	doc := &Document{
		Meta: &Meta{TotalEvents: 1, TotalMonths: 1, StartMonth: "2021-01", EndMonth: "2021-01"},
		Timeline: []Frame{{Month: "2021-01", Events: []Event{
			{ID: "x", Name: "Hamlet Premiere", Lat: 1.5, Lng: math.NaN()},
		}}},
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	assert.Contains(t, buf.String(), `"lng": null`)
	assert.Contains(t, buf.String(), `"total_events": 1`)

	back, err := Decode(&buf)
	require.NoError(t, err)
	opts := cmpopts.EquateNaNs()
	if diff := cmp.Diff(doc, back, opts); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEventMarshalOmitsMonth(t *testing.T) {
	data, err := json.Marshal(Event{Name: "A", Lat: 1, Lng: 2, Month: "2021-01", Category: CategoryOther})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"A","lat":1,"lng":2,"type":"other"}`, string(data))
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2021-04", "2021-04", true},
		{"2021-04-15", "2021-04", true},
		{"2021-04-15T10:00", "2021-04", true},
		{"2021-13", "", false},
		{"2021-02-30", "", false},
		{"2021", "", false},
		{"", "", false},
		{"abcd-ef-gh", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseMonth(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthHelpers(t *testing.T) {
	y, m := SplitMonth("2021-01")
	assert.Equal(t, "2021", y)
	assert.Equal(t, "01", m)
	assert.True(t, IsJanuary("2021-01"))
	assert.False(t, IsJanuary("2021-10"))
	assert.False(t, IsJanuary("bogus"))
	assert.True(t, ValidMonth("1999-12"))
	assert.False(t, ValidMonth("1999-1"))
}
