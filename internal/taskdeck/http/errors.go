package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/service"
	"github.com/aussiebroadwan/taskdeck/pkg/httpx"
)

// Error codes carried in the response envelope.
const (
	ErrorCodeValidation       = "validation_error"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeUnauthorized     = "unauthorized"
	ErrorCodeProviderMismatch = "provider_mismatch"
	ErrorCodeServerError      = "server_error"
	ErrorCodeNotImplemented   = "not_implemented"
)

// APIError is the uniform JSON error envelope. It implements the error
// interface so handlers can pass it around like any other error.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// WithDescription returns a copy carrying a request-specific message.
func (e *APIError) WithDescription(desc string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Description: desc}
}

var (
	// ErrValidation is returned when the request body or parameters
	// fail validation.
	ErrValidation = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "the request is malformed or missing required fields",
	}

	// ErrNotFound is returned when the addressed resource does not
	// exist or belongs to another user.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrUnauthorized is returned when credentials are missing or wrong.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "invalid credentials",
	}

	// ErrProviderMismatch is returned when a password login targets an
	// account registered through an external provider.
	ErrProviderMismatch = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeProviderMismatch,
		Description: "this account uses a different sign-in provider",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an internal error occurred",
	}

	// ErrNotImplemented is returned by stubbed endpoints.
	ErrNotImplemented = &APIError{
		StatusCode:  http.StatusNotImplemented,
		Code:        ErrorCodeNotImplemented,
		Description: "this feature is not available",
	}
)

// writeServiceError maps the service layer's sentinel errors onto the
// envelope, falling back to a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		ErrValidation.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		ErrNotFound.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrUnauthorized.WriteError(w)
	case errors.Is(err, service.ErrProviderMismatch):
		ErrProviderMismatch.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrNotImplemented):
		ErrNotImplemented.WriteError(w)
	default:
		ErrServerError.WriteError(w)
	}
}
