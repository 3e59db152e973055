package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/taskdeck/pkg/slogx"
)

// SessionVerifier validates a bearer session token and returns the
// subject user id.
type SessionVerifier interface {
	ParseSession(token string) (int64, error)
}

// AuthnMiddleware requires a valid bearer session token and injects the
// user id into the request context.
func AuthnMiddleware(v SessionVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			userID, err := v.ParseSession(raw)
			if err != nil {
				log.Warn("session verify failed", "err", err)
				writeBearerError(w, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(ctx, userID)))
		})
	}
}

// OptionalAuthn verifies a bearer token when present but lets
// sessionless requests through without a user id in context. A token
// that is present but invalid is still rejected.
func OptionalAuthn(v SessionVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := v.ParseSession(raw)
			if err != nil {
				writeBearerError(w, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer")), true
}

// RFC 6750-style error response for bearer auth failures.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
