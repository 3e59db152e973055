package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/service"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/token"
	"github.com/aussiebroadwan/taskdeck/pkg/httpx"
	"github.com/aussiebroadwan/taskdeck/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Tokens      *token.Manager
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type sessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      domain.Identity `json:"user"`
}

// HandleRegister creates a local account and opens a session for it.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrValidation.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	if req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		ErrValidation.WithDescription("passwords do not match").WriteError(w)
		return
	}

	identity, err := h.AuthService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	log.Info("account registered", "user_id", identity.ID)
	h.writeSession(w, identity, http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies a password and opens a session.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrValidation.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	identity, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Info("login rejected", "email", service.NormalizeEmail(req.Email))
		writeServiceError(w, err)
		return
	}

	h.writeSession(w, identity, http.StatusOK)
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, identity domain.Identity, code int) {
	tok, expiresAt, err := h.Tokens.IssueSession(identity.ID)
	if err != nil {
		ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, code, sessionResponse{
		Token:     tok,
		ExpiresAt: expiresAt,
		User:      identity,
	})
}
