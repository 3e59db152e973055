package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/taskdeck/internal/taskdeck/http"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/service"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store/drivers/sqlite"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store/jsonfile"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/token"
	"github.com/aussiebroadwan/taskdeck/pkg/cryptox"
	"github.com/aussiebroadwan/taskdeck/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the task service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	guest  store.Tasks
	tokens *token.Manager

	// Services
	authService        *service.AuthService
	taskService        *service.TaskService
	analyticsService   *service.AnalyticsService
	exportService      *service.ExportService
	voiceService       *service.VoiceService
	syncService        *service.SyncService
	maintenanceService *service.MaintenanceService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "taskdeck",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessionTokens(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.maintenanceService.Start()

	app.logger.Info("taskdeck starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down taskdeck...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.maintenanceService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("taskdeck stopped")
	return nil
}

// initDatabase opens the sqlite store, applies migrations, and opens
// the guest fallback file when enabled.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.logger.Info("database migrations applied successfully")

	if app.cfg.GuestFallback {
		guest, err := jsonfile.NewStore(app.cfg.FallbackFile)
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to open guest fallback file: %w", err)
		}
		app.guest = guest
		app.logger.Info("guest fallback enabled", "file", app.cfg.FallbackFile)
	}

	return nil
}

// initSessionTokens builds the session token manager. A missing secret
// is generated at startup, which invalidates sessions on restart.
func (app *Application) initSessionTokens() error {
	secret := app.cfg.SessionSecret
	if secret == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		secret = base64.RawURLEncoding.EncodeToString(raw)
		app.logger.Warn("TASKDECK_SESSION_SECRET not set; sessions will not survive restarts")
	}

	app.tokens = token.NewManager(secret, app.cfg.SessionTTL)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.authService = &service.AuthService{Store: app.db}
	app.taskService = &service.TaskService{Store: app.db, Guest: app.guest}
	app.analyticsService = &service.AnalyticsService{Store: app.db, Guest: app.guest}
	app.exportService = &service.ExportService{Store: app.db, Guest: app.guest}
	// No recognizer backend ships with the server; until one is plugged
	// in, capture reports the recognizer as unavailable and clients fall
	// back to posting transcripts to the parse endpoint.
	app.voiceService = &service.VoiceService{Timeout: app.cfg.VoiceTimeout}
	app.syncService = &service.SyncService{}

	app.maintenanceService = service.NewMaintenanceService(
		app.db,
		app.logger,
		app.cfg.MaintenanceInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.cfg.GuestFallback,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.TaskService = app.taskService
	router.AnalyticsService = app.analyticsService
	router.ExportService = app.exportService
	router.VoiceService = app.voiceService
	router.SyncService = app.syncService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
