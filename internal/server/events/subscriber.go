package events

// Subscriber consumes the event stream. Send is called from the broker
// loop and must not block.
type Subscriber interface {
	Send(Event) error
	Close() error
}
