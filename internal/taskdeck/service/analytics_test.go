package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/stretchr/testify/require"
)

func completedTask(category domain.Category, created, completed time.Time) domain.Task {
	return domain.Task{
		Category:    category,
		Done:        true,
		CreatedAt:   created,
		CompletedAt: &completed,
	}
}

func TestComputeAnalytics(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields empty maps and no average", func(t *testing.T) {
		summary := ComputeAnalytics(nil)
		require.Empty(t, summary.Weekly)
		require.Empty(t, summary.Categories)
		require.Nil(t, summary.AvgCompletionHours)
	})

	t.Run("unset category counts as Other", func(t *testing.T) {
		summary := ComputeAnalytics([]domain.Task{
			{Category: ""},
			{Category: domain.CategoryWork},
		})
		require.Equal(t, map[domain.Category]int{
			domain.CategoryOther: 1,
			domain.CategoryWork:  1,
		}, summary.Categories)
	})

	t.Run("completions bucket by ISO week", func(t *testing.T) {
		// 2025-01-01 is a Wednesday in ISO week 2025-W01;
		// 2024-12-30 (Monday) is in the same ISO week despite the year.
		w1a := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		w1b := time.Date(2024, 12, 30, 8, 0, 0, 0, time.UTC)
		w7 := time.Date(2025, 2, 12, 8, 0, 0, 0, time.UTC)

		created := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
		summary := ComputeAnalytics([]domain.Task{
			completedTask(domain.CategoryWork, created, w1a),
			completedTask(domain.CategoryWork, created, w1b),
			completedTask(domain.CategoryWork, created, w7),
		})
		require.Equal(t, map[string]int{
			"2025-W01": 2,
			"2025-W07": 1,
		}, summary.Weekly)
	})

	t.Run("average completion hours over completed tasks only", func(t *testing.T) {
		created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		summary := ComputeAnalytics([]domain.Task{
			completedTask(domain.CategoryWork, created, created.Add(2*time.Hour)),
			completedTask(domain.CategoryWork, created, created.Add(4*time.Hour)),
			{Category: domain.CategoryWork, CreatedAt: created},
		})
		require.NotNil(t, summary.AvgCompletionHours)
		require.InDelta(t, 3.0, *summary.AvgCompletionHours, 1e-9)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		tasks := []domain.Task{
			completedTask(domain.CategoryHealth, created, created.Add(time.Hour)),
			{Category: domain.CategoryShopping, CreatedAt: created},
		}
		require.Equal(t, ComputeAnalytics(tasks), ComputeAnalytics(tasks))
	})
}

func TestIsoWeekKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "2025-W01", isoWeekKey(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "2025-W01", isoWeekKey(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "2025-W07", isoWeekKey(time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)))
}
