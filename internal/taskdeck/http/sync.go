package http

import (
	"net/http"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/service"
	"github.com/aussiebroadwan/taskdeck/pkg/httpx"
)

type SyncHandler struct {
	SyncService *service.SyncService
}

// HandleSheets answers the spreadsheet sync endpoint. Until a backend
// is configured this always reports 501.
func (h *SyncHandler) HandleSheets(w http.ResponseWriter, r *http.Request) {
	status, err := h.SyncService.Sheets()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, status)
}
