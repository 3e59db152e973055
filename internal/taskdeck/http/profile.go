package http

import (
	"net/http"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/service"
	"github.com/aussiebroadwan/taskdeck/pkg/httpx"
	"github.com/aussiebroadwan/taskdeck/pkg/slogx"
)

type ProfileHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP returns the caller's identity plus gamification totals.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	profile, err := h.AuthService.Profile(ctx, userID)
	if err != nil {
		log.Warn("failed to load profile", "user_id", userID, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, profile)
}
