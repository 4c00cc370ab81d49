package handlers

import (
	"net/http"

	"github.com/agentstation/logbook/internal/server/events"
)

// HandleWebSocket handles WebSocket connections at /api/v1/updates/ws.
// @Summary WebSocket updates
// @Description WebSocket connection for catalog reload notifications
// @Tags updates
// @Success 101 "Switching Protocols"
// @Router /api/v1/updates/ws [get].
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.broker.Publish(events.ClientConnected, map[string]any{
		"transport":   "websocket",
		"remote_addr": r.RemoteAddr,
	})
	h.wsHub.ServeHTTP(w, r)
}

// HandleSSE handles Server-Sent Events at /api/v1/updates/stream.
// @Summary SSE updates stream
// @Description Server-Sent Events stream of catalog reload notifications
// @Tags updates
// @Produce text/event-stream
// @Success 200 "Event stream"
// @Router /api/v1/updates/stream [get].
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.broker.Publish(events.ClientConnected, map[string]any{
		"transport":   "sse",
		"remote_addr": r.RemoteAddr,
	})
	h.sseBroadcaster.ServeHTTP(w, r)
}
