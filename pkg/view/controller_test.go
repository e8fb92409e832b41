package view

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/stagemap/pkg/errors"
	"github.com/agentstation/stagemap/pkg/logging"
	"github.com/agentstation/stagemap/pkg/timeline"
)

type countingInterrupter struct{ stops int }

func (i *countingInterrupter) Stop() { i.stops++ }

func newTimeline(counts ...int) *timeline.Timeline {
	frames := make([]timeline.Frame, len(counts))
	for i, n := range counts {
		frames[i].Month = fmt.Sprintf("2021-%02d", i+1)
		for j := range n {
			frames[i].Events = append(frames[i].Events, timeline.Event{
				Name: fmt.Sprintf("event %d", j), Lat: float64(j), Lng: float64(j),
			})
		}
	}
	return timeline.New(frames)
}

func newController(t *testing.T, tl *timeline.Timeline, opts ...Option) (*Controller, *[]Change) {
	t.Helper()
	opts = append([]Option{WithLogger(logging.NewNopLogger())}, opts...)
	c := NewController(tl, opts...)
	var changes []Change
	c.Subscribe(func(ch Change) { changes = append(changes, ch) })
	return c, &changes
}

func TestInitialState(t *testing.T) {
	t.Run("first non-empty month", func(t *testing.T) {
		c, changes := newController(t, newTimeline(0, 0, 3, 1))
		assert.Equal(t, State{Index: 2, Mode: ModePoints}, c.State())
		assert.Equal(t, StatusReady, c.Status())
		assert.Empty(t, *changes)

		cur := c.Current()
		assert.Equal(t, CauseInit, cur.Cause)
		assert.Equal(t, "2021-03", cur.Frame.Month)
		assert.Nil(t, cur.Heat)
	})

	t.Run("all empty months", func(t *testing.T) {
		c, _ := newController(t, newTimeline(0, 0))
		assert.Equal(t, 0, c.State().Index)
	})
}

func TestSelectMonth(t *testing.T) {
	c, changes := newController(t, newTimeline(1, 2, 3))

	require.NoError(t, c.SelectMonth(1))
	require.NoError(t, c.SelectMonth(1))

	require.Len(t, *changes, 2)
	for _, ch := range *changes {
		assert.Equal(t, 1, ch.State.Index)
		assert.Equal(t, "2021-02", ch.Frame.Month)
		assert.Len(t, ch.Frame.Events, 2)
		assert.Equal(t, CauseSelect, ch.Cause)
	}
}

func TestSelectMonthOutOfRange(t *testing.T) {
	c, changes := newController(t, newTimeline(1, 2, 3))

	for _, i := range []int{-1, 3, 100} {
		err := c.SelectMonth(i)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
		assert.True(t, pkgerrors.IsValidationError(err))
	}
	assert.Equal(t, 0, c.State().Index)
	assert.Empty(t, *changes)
}

func TestUserSelectStopsPlayback(t *testing.T) {
	stopper := &countingInterrupter{}
	c, changes := newController(t, newTimeline(1, 1, 1), WithInterrupter(stopper))

	require.NoError(t, c.UserSelect(2))
	assert.Equal(t, 1, stopper.stops)
	require.Len(t, *changes, 1)
	assert.Equal(t, CauseUser, (*changes)[0].Cause)

	// rejected selections leave playback running
	require.Error(t, c.UserSelect(5))
	assert.Equal(t, 1, stopper.stops)

	// plain selects never interrupt
	require.NoError(t, c.SelectMonth(0))
	assert.Equal(t, 1, stopper.stops)
}

func TestNext(t *testing.T) {
	c, changes := newController(t, newTimeline(1, 1, 1))

	i, ok := c.Next()
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	i, ok = c.Next()
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	i, ok = c.Next()
	assert.False(t, ok)
	assert.Equal(t, 2, i)

	require.Len(t, *changes, 2)
	assert.Equal(t, CausePlayback, (*changes)[1].Cause)
}

func TestSetMode(t *testing.T) {
	t.Run("heat populates layer for the current month", func(t *testing.T) {
		stopper := &countingInterrupter{}
		c, changes := newController(t, newTimeline(0, 5), WithInterrupter(stopper))

		require.NoError(t, c.SetMode(ModeHeat))
		assert.Equal(t, 1, stopper.stops)
		require.Len(t, *changes, 1)
		ch := (*changes)[0]
		assert.Equal(t, ModeHeat, ch.State.Mode)
		require.NotNil(t, ch.Heat)
		assert.Equal(t, "2021-02", ch.Heat.Month)
		assert.Len(t, ch.Heat.Points, 5)
		assert.Equal(t, 2.2, ch.Heat.Points[0].Intensity)

		// selecting in heat mode carries the layer for the new index
		require.NoError(t, c.SelectMonth(0))
		last := (*changes)[len(*changes)-1]
		require.NotNil(t, last.Heat)
		assert.Equal(t, "2021-01", last.Heat.Month)
		assert.Empty(t, last.Heat.Points)
	})

	t.Run("points drops the layer", func(t *testing.T) {
		c, changes := newController(t, newTimeline(2))
		require.NoError(t, c.SetMode(ModeHeat))
		require.NoError(t, c.SetMode(ModePoints))
		assert.Nil(t, (*changes)[1].Heat)
		assert.Equal(t, ModePoints, c.State().Mode)
	})

	t.Run("same mode still stops playback", func(t *testing.T) {
		stopper := &countingInterrupter{}
		c, changes := newController(t, newTimeline(2), WithInterrupter(stopper))
		require.NoError(t, c.SetMode(ModePoints))
		assert.Equal(t, 1, stopper.stops)
		assert.Len(t, *changes, 1)
	})

	t.Run("heat unavailable reverts to points", func(t *testing.T) {
		c, changes := newController(t, newTimeline(2), WithHeat(false))
		require.NoError(t, c.SetMode(ModeHeat))
		require.Len(t, *changes, 1)
		assert.True(t, (*changes)[0].HeatUnavailable)
		assert.Equal(t, ModePoints, (*changes)[0].State.Mode)
		assert.Nil(t, (*changes)[0].Heat)
		assert.False(t, c.HeatAvailable())
	})

	t.Run("invalid mode", func(t *testing.T) {
		stopper := &countingInterrupter{}
		c, changes := newController(t, newTimeline(2), WithInterrupter(stopper))
		err := c.SetMode(Mode("satellite"))
		assert.True(t, pkgerrors.IsValidationError(err))
		assert.Zero(t, stopper.stops)
		assert.Empty(t, *changes)
	})
}

func TestNoData(t *testing.T) {
	stopper := &countingInterrupter{}
	c, changes := newController(t, timeline.New(nil), WithInterrupter(stopper))

	assert.Equal(t, StatusNoData, c.Status())
	assert.NoError(t, c.SelectMonth(0))
	assert.NoError(t, c.UserSelect(3))
	assert.NoError(t, c.SetMode(ModeHeat))
	_, ok := c.Next()
	assert.False(t, ok)

	assert.Empty(t, *changes)
	assert.Zero(t, stopper.stops)
	assert.Equal(t, State{Index: 0, Mode: ModePoints}, c.State())
}

func TestSubscribeOrderAndUnsubscribe(t *testing.T) {
	c := NewController(newTimeline(1, 1), WithLogger(logging.NewNopLogger()))

	var order []string
	c.Subscribe(func(Change) { order = append(order, "renderer") })
	unsub := c.Subscribe(func(Change) { order = append(order, "chart") })
	c.Subscribe(func(Change) { order = append(order, "list") })

	require.NoError(t, c.SelectMonth(1))
	assert.Equal(t, []string{"renderer", "chart", "list"}, order)

	unsub()
	unsub()
	order = nil
	require.NoError(t, c.SelectMonth(0))
	assert.Equal(t, []string{"renderer", "list"}, order)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Heat ")
	require.NoError(t, err)
	assert.Equal(t, ModeHeat, m)

	_, err = ParseMode("globe")
	assert.True(t, pkgerrors.IsValidationError(err))
}
