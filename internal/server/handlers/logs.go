package handlers

import (
	"net/http"

	"github.com/agentstation/logbook/internal/server/cache"
	"github.com/agentstation/logbook/internal/server/filter"
	"github.com/agentstation/logbook/internal/server/response"
	"github.com/agentstation/logbook/pkg/logging"
)

// HandleListLogs handles GET /api/v1/logs.
// @Summary List log entries
// @Description Filtered, paginated log entries in timestamp order
// @Tags logs
// @Produce json
// @Param level query string false "Severity level (case-insensitive)"
// @Param component query string false "Component name (case-insensitive)"
// @Param start_time query string false "Inclusive lower bound, YYYY-MM-DD HH:MM:SS"
// @Param end_time query string false "Inclusive upper bound, YYYY-MM-DD HH:MM:SS"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Entries per page" default(50)
// @Success 200 {object} response.Response{data=catalog.Page}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/logs [get].
func (h *Handlers) HandleListLogs(w http.ResponseWriter, r *http.Request) {
	q, err := filter.ParseLogQuery(r, h.limits)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	snap := h.catalog.Snapshot()
	key := cache.Key(snap.Generation(), "logs", q.CacheKey())
	if cached, found := h.cache.Get(key); found {
		response.OK(w, cached)
		return
	}

	page := snap.Search(q.Query, q.Page, q.PerPage)
	h.cache.Set(key, page)

	logging.FromContext(r.Context()).Debug().
		Int("total", page.Total).
		Int("page", page.Page).
		Int("returned", len(page.Records)).
		Msg("Listed log entries")

	response.OK(w, page)
}

// HandleLogStats handles GET /api/v1/logs/stats.
// @Summary Log statistics
// @Description Total entries and counts per level and per component
// @Tags logs
// @Produce json
// @Success 200 {object} response.Response{data=catalog.Stats}
// @Router /api/v1/logs/stats [get].
func (h *Handlers) HandleLogStats(w http.ResponseWriter, _ *http.Request) {
	snap := h.catalog.Snapshot()
	key := cache.Key(snap.Generation(), "stats")
	if cached, found := h.cache.Get(key); found {
		response.OK(w, cached)
		return
	}

	stats := snap.Stats()
	h.cache.Set(key, stats)
	response.OK(w, stats)
}

// HandleGetLog handles GET /api/v1/logs/{id}.
// @Summary Get log entry
// @Description One log entry by id
// @Tags logs
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} response.Response{data=catalog.Record}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/logs/{id} [get].
func (h *Handlers) HandleGetLog(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	record, err := h.catalog.Find(id)
	if err != nil {
		logging.FromContext(logging.WithRecordID(r.Context(), id)).Debug().Msg("Log entry not found")
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, record)
}
