package adapters

import (
	"strconv"

	"github.com/agentstation/logbook/internal/server/events"
	"github.com/agentstation/logbook/internal/server/sse"
)

// SSESubscriber forwards broker events to an SSE broadcaster.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates a new SSE subscriber.
func NewSSESubscriber(broadcaster *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: broadcaster}
}

// Send delivers an event to all SSE clients. The broker sequence number
// becomes the SSE id.
func (s *SSESubscriber) Send(event events.Event) error {
	s.broadcaster.Broadcast(sse.Event{
		Event: string(event.Type),
		ID:    strconv.FormatUint(event.ID, 10),
		Data:  event.Data,
	})
	return nil
}

// Close is a no-op; the broadcaster owns its lifecycle.
func (s *SSESubscriber) Close() error {
	return nil
}
