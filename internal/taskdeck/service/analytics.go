package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
)

// AnalyticsService aggregates a user's tasks. Reads only; identical
// input always yields identical output.
type AnalyticsService struct {
	Store store.Store
	Guest store.Tasks
}

// Summary loads the user's full task set and aggregates it.
func (s *AnalyticsService) Summary(ctx context.Context, userID int64) (domain.AnalyticsSummary, error) {
	repo := s.Store.Tasks()
	if userID == domain.GuestUserID && s.Guest != nil {
		repo = s.Guest
	}

	tasks, err := repo.ListTasks(ctx, userID)
	if err != nil {
		return domain.AnalyticsSummary{}, err
	}
	return ComputeAnalytics(tasks), nil
}

// ComputeAnalytics is the pure aggregation over a task collection:
// completions per ISO week, counts per category (unset mapping to
// Other), and mean completion latency in hours.
func ComputeAnalytics(tasks []domain.Task) domain.AnalyticsSummary {
	summary := domain.AnalyticsSummary{
		Weekly:     map[string]int{},
		Categories: map[domain.Category]int{},
	}

	var totalHours float64
	var completed int

	for _, t := range tasks {
		category := t.Category
		if category == "" {
			category = domain.CategoryOther
		}
		summary.Categories[category]++

		if t.CompletedAt == nil {
			continue
		}
		summary.Weekly[isoWeekKey(*t.CompletedAt)]++

		totalHours += t.CompletedAt.Sub(t.CreatedAt).Hours()
		completed++
	}

	if completed > 0 {
		avg := totalHours / float64(completed)
		summary.AvgCompletionHours = &avg
	}
	return summary
}

// isoWeekKey buckets a timestamp by ISO year and week, e.g. "2025-W07".
func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
