// Package handlers provides HTTP request handlers for the logbook API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/logbook/internal/server/cache"
	"github.com/agentstation/logbook/internal/server/events"
	"github.com/agentstation/logbook/internal/server/filter"
	"github.com/agentstation/logbook/internal/server/sse"
	ws "github.com/agentstation/logbook/internal/server/websocket"
	"github.com/agentstation/logbook/pkg/catalog"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	catalog        *catalog.Catalog
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	limits         filter.Limits
	version        string
	startTime      time.Time
	logger         *zerolog.Logger
}

// New creates a new Handlers instance.
func New(
	cat *catalog.Catalog,
	cache *cache.Cache,
	broker *events.Broker,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	limits filter.Limits,
	version string,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		catalog:        cat,
		cache:          cache,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		limits:         limits,
		version:        version,
		startTime:      time.Now(),
		logger:         logger,
	}
}
