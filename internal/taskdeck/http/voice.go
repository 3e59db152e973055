package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/service"
	"github.com/aussiebroadwan/taskdeck/pkg/httpx"
)

type VoiceHandler struct {
	VoiceService *service.VoiceService
}

type voiceParseRequest struct {
	Text string `json:"text"`
}

// voiceDraftView renders the parsed draft; the due date flattens to a
// calendar date like everywhere else on the wire.
type voiceDraftView struct {
	Title    string  `json:"title"`
	Due      *string `json:"due,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

// HandleParse turns a transcript into a task draft. Parsing never
// touches stored data; the caller decides whether to create the task.
func (h *VoiceHandler) HandleParse(w http.ResponseWriter, r *http.Request) {
	var req voiceParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrValidation.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}
	if req.Text == "" {
		ErrValidation.WithDescription("text must not be empty").WriteError(w)
		return
	}

	draft := h.VoiceService.Parse(req.Text)

	view := voiceDraftView{Title: draft.Title}
	if draft.Due != nil {
		due := draft.Due.Format(time.DateOnly)
		view.Due = &due
	}
	if draft.Priority != nil {
		p := string(*draft.Priority)
		view.Priority = &p
	}

	httpx.WriteJSON(w, http.StatusOK, view)
}
