// Package adapters connects broker subscribers to the realtime transports.
package adapters

import (
	"github.com/agentstation/stagemap/internal/server/events"
	ws "github.com/agentstation/stagemap/internal/server/websocket"
)

// WebSocketSubscriber forwards events to every WebSocket client.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a subscriber for hub.
func NewWebSocketSubscriber(hub *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: hub}
}

// Send implements events.Subscriber.
func (w *WebSocketSubscriber) Send(event events.Event) error {
	w.hub.Broadcast(WebSocketMessage(event))
	return nil
}

// Close is a no-op; the hub has its own lifecycle.
func (w *WebSocketSubscriber) Close() error {
	return nil
}

// WebSocketMessage converts a broker event to a WebSocket frame.
func WebSocketMessage(event events.Event) ws.Message {
	return ws.Message{
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
		Sequence:  event.Sequence,
		Data:      event.Data,
	}
}
