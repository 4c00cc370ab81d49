package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/logbook/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health.
// @Summary Health check
// @Description Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "logbook",
		"version": h.version,
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HandleReady handles GET /api/v1/ready. The server is ready once the
// first load has published a snapshot.
// @Summary Readiness check
// @Description Readiness probe including catalog and transport status
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	snap := h.catalog.Snapshot()
	if snap.Generation() == 0 {
		response.ServiceUnavailable(w, "Catalog not loaded")
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"catalog": map[string]any{
			"root":       snap.Root(),
			"generation": snap.Generation(),
			"records":    snap.Len(),
			"loaded_at":  snap.LoadedAt(),
		},
		"cache":             h.cache.GetStats(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
