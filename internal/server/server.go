// Package server provides the HTTP server for the logbook API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/logbook/cmd/application"
	"github.com/agentstation/logbook/internal/metrics"
	"github.com/agentstation/logbook/internal/server/cache"
	"github.com/agentstation/logbook/internal/server/events"
	"github.com/agentstation/logbook/internal/server/events/adapters"
	"github.com/agentstation/logbook/internal/server/sse"
	ws "github.com/agentstation/logbook/internal/server/websocket"
	"github.com/agentstation/logbook/pkg/catalog"
	"github.com/agentstation/logbook/pkg/constants"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app            application.Application
	catalog        *catalog.Catalog
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	metrics        *metrics.Metrics
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// New creates a server for the application's catalog and registers the
// catalog hooks that keep the cache, metrics and event streams current.
// The catalog is not loaded here.
func New(app application.Application, cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := app.Logger()

	cat, err := app.Catalog()
	if err != nil {
		return nil, err
	}

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	// registration is buffered, so this does not wait for Start
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		app:            app,
		catalog:        cat,
		cache:          cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		metrics:        metrics.New(),
		logger:         logger,
		config:         cfg,
		ctx:            ctx,
		cancel:         cancel,
		startTime:      time.Now(),
	}
	s.connectHooks()

	logger.Debug().
		Str("root", cat.Root()).
		Str("prefix", cfg.PathPrefix).
		Msg("Server instance created")
	return s, nil
}

// connectHooks ties catalog loads to metrics, the cache and the broker.
func (s *Server) connectHooks() {
	s.metrics.Attach(s.catalog)

	s.catalog.OnReload(func(report *catalog.LoadReport) {
		s.cache.Clear()
		s.broker.Publish(events.CatalogReloaded, report)
		s.logger.Debug().
			Uint64("generation", report.Generation).
			Int("records", report.Records).
			Msg("Catalog reload event published")
	})

	s.catalog.OnLoadFailed(func(err error) {
		s.broker.Publish(events.CatalogLoadFailed, events.LoadFailure{
			Root:       s.catalog.Root(),
			Generation: s.catalog.Generation(),
			Error:      err.Error(),
		})
	})
}

// Start starts background services (broker, WebSocket hub, SSE broadcaster).
func (s *Server) Start() {
	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)
	s.logger.Debug().Msg("Background services started")
}

// Reload loads the catalog, as SIGHUP and POST /reload do.
func (s *Server) Reload(ctx context.Context) (*catalog.LoadReport, error) {
	return s.catalog.Load(ctx)
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server for the configured address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.Handler(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
}

// Shutdown stops background services. Open streams are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()

	// the run loops exit promptly once canceled; give them a moment
	select {
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Catalog returns the served catalog.
func (s *Server) Catalog() *catalog.Catalog {
	return s.catalog
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Metrics returns the server's Prometheus collectors.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
