package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
)

// ExportService renders a user's tasks for backup/download. Field
// values pass through the canonical record form so a JSON export can
// be re-imported byte-compatibly.
type ExportService struct {
	Store store.Store
	Guest store.Tasks
}

// csvHeader mirrors the record field names, in storage column order.
var csvHeader = []string{
	"id", "user_id", "title", "desc", "due",
	"priority", "category", "done", "created_at", "completed_at",
}

func (s *ExportService) records(ctx context.Context, userID int64) ([]domain.TaskRecord, error) {
	repo := s.Store.Tasks()
	if userID == domain.GuestUserID && s.Guest != nil {
		repo = s.Guest
	}

	tasks, err := repo.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.Record())
	}
	return records, nil
}

// JSON returns the user's tasks as an indented JSON array.
func (s *ExportService) JSON(ctx context.Context, userID int64) ([]byte, error) {
	records, err := s.records(ctx, userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(records, "", "  ")
}

// CSV returns the user's tasks as flattened rows under a header line.
func (s *ExportService) CSV(ctx context.Context, userID int64) ([]byte, error) {
	records, err := s.records(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			strconv.FormatInt(rec.UserID, 10),
			rec.Title,
			rec.Desc,
			deref(rec.Due),
			rec.Priority,
			rec.Category,
			strconv.FormatBool(rec.Done),
			rec.CreatedAt,
			deref(rec.CompletedAt),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
