package adapters

import (
	"github.com/agentstation/stagemap/internal/server/events"
	"github.com/agentstation/stagemap/internal/server/sse"
)

// SSESubscriber forwards events to every SSE stream.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates a subscriber for broadcaster.
func NewSSESubscriber(broadcaster *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: broadcaster}
}

// Send implements events.Subscriber.
func (s *SSESubscriber) Send(event events.Event) error {
	s.broadcaster.Broadcast(SSEEvent(event))
	return nil
}

// Close is a no-op; the broadcaster has its own lifecycle.
func (s *SSESubscriber) Close() error {
	return nil
}

// SSEEvent converts a broker event to an SSE message.
func SSEEvent(event events.Event) sse.Event {
	return sse.Event{
		Event: string(event.Type),
		ID:    event.Sequence,
		Data:  event.Data,
	}
}
