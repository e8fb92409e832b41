package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (r *recorder) Send(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recorder) sequences() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint64, len(r.events))
	for i, e := range r.events {
		out[i] = e.Sequence
	}
	return out
}

func (r *recorder) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func newBroker() *Broker {
	logger := zerolog.Nop()
	return NewBroker(&logger)
}

func TestBrokerDeliversInOrder(t *testing.T) {
	b := newBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := &recorder{}
	b.Subscribe(sub)
	go b.Run(ctx)

	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	for i := uint64(1); i <= 20; i++ {
		b.Publish(StateChanged, i, nil)
	}

	require.Eventually(t, func() bool { return len(sub.sequences()) == 20 }, time.Second, 5*time.Millisecond)
	for i, seq := range sub.sequences() {
		assert.Equal(t, uint64(i+1), seq)
	}
}

func TestBrokerSubscribeBeforeRun(t *testing.T) {
	b := newBroker()

	done := make(chan struct{})
	go func() {
		for range 5 {
			b.Subscribe(&recorder{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe blocked before Run")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 5 }, time.Second, 5*time.Millisecond)
}

func TestBrokerUnsubscribeAndShutdown(t *testing.T) {
	b := newBroker()
	ctx, cancel := context.WithCancel(context.Background())

	a, c := &recorder{}, &recorder{}
	b.Subscribe(a)
	b.Subscribe(c)
	go b.Run(ctx)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 2 }, time.Second, 5*time.Millisecond)

	b.Unsubscribe(a)
	require.Eventually(t, a.isClosed, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, b.SubscriberCount())

	cancel()
	require.Eventually(t, c.isClosed, time.Second, 5*time.Millisecond)
	assert.Zero(t, b.SubscriberCount())
}
