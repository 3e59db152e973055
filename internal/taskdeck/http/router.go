package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/service"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/token"
	"github.com/aussiebroadwan/taskdeck/pkg/httpx"
	"github.com/aussiebroadwan/taskdeck/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *token.Manager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// GuestFallback lets sessionless task requests operate on the
	// shared guest data set instead of failing authentication.
	guestFallback bool

	store            store.Store
	AuthService      *service.AuthService
	TaskService      *service.TaskService
	AnalyticsService *service.AnalyticsService
	ExportService    *service.ExportService
	VoiceService     *service.VoiceService
	SyncService      *service.SyncService
}

func NewRouter(
	tokens *token.Manager,
	buildVersion string,
	guestFallback bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		tokens:        tokens,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		guestFallback: guestFallback,
		store:         st,
		logger:        logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTasks()
	r.registerProfile()
	r.registerAnalytics()
	r.registerExport()
	r.registerVoice()
	r.registerSync()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn is the session requirement for data endpoints. With guest
// fallback on, a missing token resolves to the shared guest user
// instead of a 401; an invalid token is still rejected.
func (r *Router) authn() []httpx.Middleware {
	if r.guestFallback {
		return []httpx.Middleware{
			httpx.OptionalAuthn(r.tokens),
			guestDefault,
		}
	}
	return []httpx.Middleware{httpx.AuthnMiddleware(r.tokens)}
}

// guestDefault fills in the guest user id for sessionless requests.
// Must run inside OptionalAuthn so real sessions take precedence.
func guestDefault(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		if _, ok := httpx.UserIDFromContext(ctx); !ok {
			req = req.WithContext(httpx.ContextWithUserID(ctx, domain.GuestUserID))
		}
		next.ServeHTTP(w, req)
	})
}

func secured(h http.Handler, authn []httpx.Middleware, rest ...httpx.Middleware) http.Handler {
	return httpx.Chain(h, append(authn, rest...)...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, Tokens: r.tokens}

	// Credential endpoints get strict per-IP limits to slow brute force.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TaskService: r.TaskService}
	authn := r.authn()

	r.Mux.Handle("GET /v1/tasks",
		secured(http.HandlerFunc(h.HandleList), authn,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/tasks",
		secured(http.HandlerFunc(h.HandleCreate), authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/tasks/{id}",
		secured(http.HandlerFunc(h.HandleUpdate), authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/tasks/{id}",
		secured(http.HandlerFunc(h.HandleDelete), authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{AuthService: r.AuthService}

	// Profile always needs a real session; guest data has no account.
	r.Mux.Handle("GET /v1/profile",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.tokens),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAnalytics() {
	h := &AnalyticsHandler{AnalyticsService: r.AnalyticsService}

	r.Mux.Handle("GET /v1/analytics",
		secured(h, r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerExport() {
	h := &ExportHandler{ExportService: r.ExportService}
	authn := r.authn()

	r.Mux.Handle("GET /v1/export/json",
		secured(http.HandlerFunc(h.HandleJSON), authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/export/csv",
		secured(http.HandlerFunc(h.HandleCSV), authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerVoice() {
	h := &VoiceHandler{VoiceService: r.VoiceService}

	// Parsing is stateless, so it only needs an IP limit.
	r.Mux.Handle("POST /v1/voice/parse",
		httpx.Chain(http.HandlerFunc(h.HandleParse),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSync() {
	h := &SyncHandler{SyncService: r.SyncService}

	r.Mux.Handle("POST /v1/sync/sheets",
		secured(http.HandlerFunc(h.HandleSheets), r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints get lenient per-IP limits; monitoring
	// systems may poll frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
