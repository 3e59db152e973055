package domain

// AnalyticsSummary aggregates a user's full task collection. The same
// input always produces the same summary.
type AnalyticsSummary struct {
	// Weekly counts completed tasks per ISO year-week key ("2025-W09").
	Weekly map[string]int `json:"weekly"`
	// Categories counts all tasks per category, nil/unset mapping to Other.
	Categories map[Category]int `json:"categories"`
	// AvgCompletionHours is the mean completion latency in hours, nil
	// when no task has both timestamps.
	AvgCompletionHours *float64 `json:"avg_completion_hours"`
}
