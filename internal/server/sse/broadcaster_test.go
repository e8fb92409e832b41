package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcasterStream(t *testing.T) {
	logger := zerolog.Nop()
	greeting := func() (Event, bool) {
		return Event{Event: "state.changed", ID: 1, Data: map[string]any{"month": "2021-01"}}, true
	}
	b := NewBroadcaster(&logger, greeting)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 32)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	next := func() string {
		select {
		case l := <-lines:
			return l
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for SSE line")
			return ""
		}
	}

	assert.Equal(t, "event: state.changed", next())
	assert.Equal(t, "id: 1", next())
	assert.Equal(t, `data: {"month":"2021-01"}`, next())
	assert.Equal(t, "", next())

	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	b.Broadcast(Event{Event: "state.changed", ID: 2, Data: map[string]any{"month": "2021-02"}})

	assert.Equal(t, "event: state.changed", next())
	assert.Equal(t, "id: 2", next())
	assert.True(t, strings.Contains(next(), "2021-02"))
}

func TestBroadcasterShutdownEndsStreams(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)

	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	require.Eventually(t, func() bool { return b.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}
