// Package adapters attaches the real-time transports to the event broker.
package adapters

import (
	"github.com/agentstation/logbook/internal/server/events"
	ws "github.com/agentstation/logbook/internal/server/websocket"
)

// WebSocketSubscriber forwards broker events to a WebSocket hub.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a new WebSocket subscriber.
func NewWebSocketSubscriber(hub *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: hub}
}

// Send delivers an event to all WebSocket clients.
func (w *WebSocketSubscriber) Send(event events.Event) error {
	w.hub.Broadcast(ws.Message{
		ID:        event.ID,
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
		Data:      event.Data,
	})
	return nil
}

// Close is a no-op; the hub owns its lifecycle.
func (w *WebSocketSubscriber) Close() error {
	return nil
}
