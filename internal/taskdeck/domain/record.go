package domain

import "time"

// TaskRecord is the canonical serialized form of a task. It is the
// shape stored in the JSON fallback file and produced by the JSON and
// CSV exports, with all date/time values as ISO-8601 strings so the
// files stay compatible across versions.
type TaskRecord struct {
	ID          string  `json:"id"`
	UserID      int64   `json:"user_id"`
	Title       string  `json:"title"`
	Desc        string  `json:"desc"`
	Due         *string `json:"due"`
	Priority    string  `json:"priority"`
	Category    string  `json:"category"`
	Done        bool    `json:"done"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

// Record converts the task to its serialized form.
func (t Task) Record() TaskRecord {
	rec := TaskRecord{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Desc:      t.Desc,
		Priority:  string(t.Priority),
		Category:  string(t.Category),
		Done:      t.Done,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	if t.Due != nil {
		due := t.Due.Format(time.DateOnly)
		rec.Due = &due
	}
	if t.CompletedAt != nil {
		completed := t.CompletedAt.Format(time.RFC3339)
		rec.CompletedAt = &completed
	}
	return rec
}

// Task converts a serialized record back to the native form. Malformed
// timestamps surface as parse errors rather than silent zero values.
func (r TaskRecord) Task() (Task, error) {
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return Task{}, err
	}

	t := Task{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Desc:      r.Desc,
		Priority:  Priority(r.Priority),
		Category:  Category(r.Category),
		Done:      r.Done,
		CreatedAt: createdAt,
	}
	if r.Due != nil {
		due, err := time.Parse(time.DateOnly, *r.Due)
		if err != nil {
			return Task{}, err
		}
		t.Due = &due
	}
	if r.CompletedAt != nil {
		completed, err := time.Parse(time.RFC3339, *r.CompletedAt)
		if err != nil {
			return Task{}, err
		}
		t.CompletedAt = &completed
	}
	return t, nil
}
