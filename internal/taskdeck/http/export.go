package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/service"
	"github.com/aussiebroadwan/taskdeck/pkg/httpx"
	"github.com/aussiebroadwan/taskdeck/pkg/slogx"
)

type ExportHandler struct {
	ExportService *service.ExportService
}

// HandleJSON streams the caller's tasks as a JSON download.
func (h *ExportHandler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "application/json", "tasks.json", h.ExportService.JSON)
}

// HandleCSV streams the caller's tasks as a CSV download.
func (h *ExportHandler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "text/csv", "tasks.csv", h.ExportService.CSV)
}

func (h *ExportHandler) export(
	w http.ResponseWriter,
	r *http.Request,
	contentType, filename string,
	render func(ctx context.Context, userID int64) ([]byte, error),
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		ErrUnauthorized.WriteError(w)
		return
	}

	body, err := render(ctx, userID)
	if err != nil {
		log.Warn("export failed", "user_id", userID, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
