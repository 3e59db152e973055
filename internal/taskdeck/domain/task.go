package domain

import (
	"errors"
	"strings"
	"time"
)

// GuestUserID is the owner id used for tasks held in the JSON fallback
// file when no authenticated user context exists.
const GuestUserID int64 = 0

// Priority is the closed priority enumeration. The canonical string
// forms are what the store and exports carry.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"

	// PriorityAuto is a create-time sentinel asking the service to
	// derive the priority from the due date. Never stored.
	PriorityAuto Priority = "Auto"
)

var ErrUnknownPriority = errors.New("unknown priority")

// ParsePriority maps a case-insensitive string onto the enum. Empty
// input parses as Auto.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PriorityAuto, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return "", ErrUnknownPriority
}

// Category is the closed category enumeration.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryHealth   Category = "Health"
	CategoryOther    Category = "Other"
)

var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory maps a case-insensitive string onto the enum. Empty or
// unset input defaults to Other, matching the analytics defaulting rule.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "other":
		return CategoryOther, nil
	case "work":
		return CategoryWork, nil
	case "personal":
		return CategoryPersonal, nil
	case "shopping":
		return CategoryShopping, nil
	case "health":
		return CategoryHealth, nil
	}
	return "", ErrUnknownCategory
}

type Task struct {
	ID          string // opaque uuid, stable for the task's lifetime
	UserID      int64
	Title       string
	Desc        string
	Due         *time.Time // calendar date, no time component
	Priority    Priority
	Category    Category
	Done        bool
	CreatedAt   time.Time
	CompletedAt *time.Time // set exactly once, on the false->true done transition
}

// TaskPatch enumerates the updatable task fields. Nil pointers leave
// the field untouched; ClearDue removes the due date.
type TaskPatch struct {
	Title    *string
	Desc     *string
	Due      *time.Time
	ClearDue bool
	Priority *Priority
	Category *Category
	Done     *bool
}

// TaskFilter narrows a task listing. Zero values match everything.
type TaskFilter struct {
	Query    string   // case-insensitive substring over title and description
	Status   string   // "pending", "done" or empty
	Priority Priority // exact match when set
	Category Category // exact match when set
}

// Matches reports whether t passes every set criterion.
func (f TaskFilter) Matches(t Task) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Desc), q) {
			return false
		}
	}
	switch f.Status {
	case "done":
		if !t.Done {
			return false
		}
	case "pending":
		if t.Done {
			return false
		}
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	return true
}
