package playback

import (
	"sync"
	"time"
)

// Handle cancels a scheduled task.
type Handle interface {
	// Cancel stops the task. After Cancel returns fn is not started again.
	Cancel()
}

// Scheduler arms recurring tasks.
type Scheduler interface {
	Every(d time.Duration, fn func()) Handle
}

// Dispatcher moves a tick onto the goroutine that owns the Engine. It must
// give up and return false once cancel is closed.
type Dispatcher interface {
	Dispatch(cancel <-chan struct{}, fn func()) bool
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(cancel <-chan struct{}, fn func()) bool

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(cancel <-chan struct{}, fn func()) bool {
	return f(cancel, fn)
}

// TickerScheduler runs each task on a time.Ticker goroutine and hands every
// tick to a Dispatcher.
type TickerScheduler struct {
	dispatcher Dispatcher
}

// NewTickerScheduler returns a scheduler delivering ticks through d.
func NewTickerScheduler(d Dispatcher) *TickerScheduler {
	return &TickerScheduler{dispatcher: d}
}

// Every starts a ticker goroutine.
func (s *TickerScheduler) Every(d time.Duration, fn func()) Handle {
	h := &tickerHandle{stopCh: make(chan struct{})}
	ticker := time.NewTicker(d)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-h.stopCh:
				return
			case <-ticker.C:
				if !s.dispatcher.Dispatch(h.stopCh, fn) {
					return
				}
			}
		}
	}()
	return h
}

type tickerHandle struct {
	once   sync.Once
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// Cancel closes the stop channel and waits for the goroutine to exit.
func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		close(h.stopCh)
	})
	h.wg.Wait()
}
