package server

import (
	"net/http"

	"github.com/agentstation/logbook/internal/server/handlers"
	"github.com/agentstation/logbook/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.catalog,
		s.cache,
		s.broker,
		s.wsHub,
		s.sseBroadcaster,
		s.config.Limits,
		s.app.Version(),
		s.logger,
	)

	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Logs
	mux.HandleFunc("GET "+prefix+"/logs", h.HandleListLogs)
	mux.HandleFunc("GET "+prefix+"/logs/stats", h.HandleLogStats)
	mux.HandleFunc("GET "+prefix+"/logs/{id}", h.HandleGetLog)

	// Admin
	mux.HandleFunc("POST "+prefix+"/reload", h.HandleReload)

	// Real-time
	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+prefix+"/updates/stream", h.HandleSSE)

	if s.config.MetricsEnabled {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// applyMiddleware wraps handler with the middleware chain. The first
// entry is the outermost.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	chain := []func(http.Handler) http.Handler{
		middleware.RequestID(s.logger),
		middleware.Recovery(),
		middleware.Logger(),
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}

	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig(cfg.PathPrefix)
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		chain = append(chain, middleware.Auth(authConfig))
	}

	if cfg.RateLimit > 0 {
		chain = append(chain, middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)))
	}

	// innermost, so it sees the pattern the mux matched
	chain = append(chain, middleware.Metrics(s.metrics))

	return middleware.Chain(chain...)(handler)
}
