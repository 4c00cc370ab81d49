// Package events fans catalog lifecycle events out to the real-time
// transports (WebSocket and SSE).
//
// The server registers catalog hooks that publish into a Broker; each
// transport is attached as a Subscriber through the adapters package.
package events

import "time"

// EventType represents the type of catalog event.
type EventType string

// Event types.
const (
	// CatalogReloaded is published after a successful Load. Data is the
	// *catalog.LoadReport.
	CatalogReloaded EventType = "catalog.reloaded"

	// CatalogLoadFailed is published when a Load aborts and the previous
	// snapshot is kept. Data is a LoadFailure.
	CatalogLoadFailed EventType = "catalog.load_failed"

	// ClientConnected is published by transports when a client attaches.
	ClientConnected EventType = "client.connected"
)

// Event is a single broker message.
type Event struct {
	ID        uint64    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// LoadFailure is the payload of CatalogLoadFailed.
type LoadFailure struct {
	Root       string `json:"root"`
	Generation uint64 `json:"generation"`
	Error      string `json:"error"`
}
