package handlers

import (
	"net/http"

	"github.com/agentstation/logbook/internal/server/response"
	"github.com/agentstation/logbook/pkg/logging"
)

// HandleReload handles POST /api/v1/reload.
// @Summary Reload the catalog
// @Description Rescan the log directory and publish a new snapshot
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=catalog.LoadReport}
// @Failure 504 {object} response.Response{error=response.Error}
// @Security ApiKeyAuth
// @Router /api/v1/reload [post].
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithOperation(r.Context(), "reload")

	report, err := h.catalog.Load(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Catalog reload failed")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, report)
}
