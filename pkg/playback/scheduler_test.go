package playback

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// loopDispatcher forwards ticks onto a channel drained by the test, the
// way a player loop would.
func loopDispatcher(queue chan func()) Dispatcher {
	return DispatcherFunc(func(cancel <-chan struct{}, fn func()) bool {
		select {
		case queue <- fn:
			return true
		case <-cancel:
			return false
		}
	})
}

func TestTickerSchedulerDelivers(t *testing.T) {
	queue := make(chan func())
	s := NewTickerScheduler(loopDispatcher(queue))

	var ticks atomic.Int32
	h := s.Every(5*time.Millisecond, func() { ticks.Add(1) })

	for range 3 {
		select {
		case fn := <-queue:
			fn()
		case <-time.After(time.Second):
			t.Fatal("tick not delivered")
		}
	}
	h.Cancel()
	assert.Equal(t, int32(3), ticks.Load())
}

func TestTickerSchedulerCancelUnblocksDispatch(t *testing.T) {
	// nobody drains the queue, so the goroutine blocks in Dispatch
	queue := make(chan func())
	s := NewTickerScheduler(loopDispatcher(queue))
	h := s.Every(time.Millisecond, func() {})

	time.Sleep(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		h.Cancel()
		h.Cancel()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Cancel did not return")
	}

	select {
	case <-queue:
		t.Fatal("tick delivered after Cancel returned")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestEngineWithTickerScheduler(t *testing.T) {
	queue := make(chan func(), 16)
	target := &fakeStepper{index: 0, n: 3}
	e := New(target, NewTickerScheduler(loopDispatcher(queue)), WithInterval(time.Millisecond))

	e.Start()
	deadline := time.After(2 * time.Second)
	for e.State() == Playing {
		select {
		case fn := <-queue:
			fn()
		case <-deadline:
			t.Fatal("playback did not finish")
		}
	}
	assert.Equal(t, []int{1, 2}, target.visited)
}
