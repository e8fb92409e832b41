package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrRender(t *testing.T) {
	c := New(time.Minute, time.Minute)
	calls := 0
	render := func() (Payload, error) {
		calls++
		return Payload{ContentType: "image/svg+xml", Body: []byte("<svg/>")}, nil
	}

	p, err := c.GetOrRender(ChartKey(3), render)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(p.Body))

	p, err = c.GetOrRender(ChartKey(3), render)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", p.ContentType)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.ItemCount())
}

func TestGetOrRenderError(t *testing.T) {
	c := New(time.Minute, time.Minute)
	_, err := c.GetOrRender(HeatKey(0), func() (Payload, error) {
		return Payload{}, errors.New("boom")
	})
	require.Error(t, err)
	_, ok := c.Get(HeatKey(0))
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(20*time.Millisecond, 10*time.Millisecond)
	c.Set(ListKey(1), Payload{Body: []byte("x")})

	_, ok := c.Get(ListKey(1))
	require.True(t, ok)

	require.Eventually(t, func() bool {
		_, ok := c.Get(ListKey(1))
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestKeysAreDistinct(t *testing.T) {
	keys := map[string]bool{ChartKey(1): true, ListKey(1): true, HeatKey(1): true, MonthKey(1): true}
	assert.Len(t, keys, 4)

	c := New(time.Minute, time.Minute)
	c.Set(MonthKey(0), Payload{})
	c.Clear()
	assert.Zero(t, c.ItemCount())
}
