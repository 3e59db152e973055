package http

import (
	"net/http"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/service"
	"github.com/aussiebroadwan/taskdeck/pkg/httpx"
	"github.com/aussiebroadwan/taskdeck/pkg/slogx"
)

type AnalyticsHandler struct {
	AnalyticsService *service.AnalyticsService
}

// ServeHTTP returns the caller's aggregated task statistics.
func (h *AnalyticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	summary, err := h.AnalyticsService.Summary(ctx, userID)
	if err != nil {
		log.Warn("failed to compute analytics", "user_id", userID, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, summary)
}
