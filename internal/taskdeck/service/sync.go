package service

import "fmt"

// SyncService fronts spreadsheet synchronization. Wiring to a concrete
// sheets backend is intentionally not provided; every call reports the
// feature as unavailable so clients can surface a stable message.
type SyncService struct{}

// SheetsStatus describes the spreadsheet sync endpoint state.
type SheetsStatus struct {
	Enabled bool   `json:"enabled"`
	Detail  string `json:"detail"`
}

// Sheets reports the sync status and always fails with
// ErrNotImplemented until a backend is configured.
func (s *SyncService) Sheets() (SheetsStatus, error) {
	return SheetsStatus{
		Enabled: false,
		Detail:  "spreadsheet sync requires a configured sheets backend",
	}, fmt.Errorf("sheets sync: %w", ErrNotImplemented)
}
