package events

// Subscriber consumes broker events.
type Subscriber interface {
	// Send delivers an event. It must not block for long; the broker
	// calls it from its own goroutine per event.
	Send(Event) error

	// Close shuts the subscriber down.
	Close() error
}
