package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
)

// MaintenanceService periodically runs database maintenance so a
// long-lived sqlite file keeps its query planner statistics fresh and
// its WAL from growing without bound.
type MaintenanceService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewMaintenanceService creates a maintenance service with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewMaintenanceService(store store.Store, logger *slog.Logger, interval time.Duration) *MaintenanceService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &MaintenanceService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop() to
// shut the worker down.
func (s *MaintenanceService) Start() {
	go s.run()
	s.Logger.Info("maintenance service started", "interval", s.Interval)
}

// Stop shuts down the background worker. Blocks until any in-progress
// maintenance pass completes.
func (s *MaintenanceService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("maintenance service stopped")
}

func (s *MaintenanceService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.maintain()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MaintenanceService) maintain() {
	ctx := context.Background()

	if err := s.Store.Maintain(ctx); err != nil {
		s.Logger.Error("database maintenance failed", "error", err)
		return
	}
	s.Logger.Debug("database maintenance completed")
}
