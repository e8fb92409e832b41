// Package events fans player snapshots out to the realtime transports.
//
// The Player's change hook publishes into a Broker; WebSocket and SSE
// adapters subscribe to it, so every transport sees the same stream in the
// same order.
package events

import "time"

// EventType names an event on the stream.
type EventType string

// Event types.
const (
	// StateChanged carries a stagemap.Snapshot after every session change.
	StateChanged EventType = "state.changed"

	// ClientConnected is published when a realtime client joins.
	ClientConnected EventType = "client.connected"

	// CommandFailed reports a rejected realtime command.
	CommandFailed EventType = "command.failed"
)

// Event is one item on the stream. Sequence orders StateChanged events and
// is zero for the rest.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Sequence  uint64    `json:"sequence,omitempty"`
	Data      any       `json:"data"`
}
