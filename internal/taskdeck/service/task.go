package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
	"github.com/google/uuid"
)

// TaskService owns all task CRUD plus the completion-time gamification
// side effect. When Guest is set, operations for domain.GuestUserID
// run against the JSON fallback file instead of the database; guest
// data never participates in gamification.
type TaskService struct {
	Store store.Store
	Guest store.Tasks

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *TaskService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TaskService) isGuest(userID int64) bool {
	return userID == domain.GuestUserID && s.Guest != nil
}

func (s *TaskService) tasksFor(userID int64) store.Tasks {
	if s.isGuest(userID) {
		return s.Guest
	}
	return s.Store.Tasks()
}

// CreateTaskInput carries the user-supplied fields for a new task.
type CreateTaskInput struct {
	Title    string
	Desc     string
	Due      *time.Time
	Priority domain.Priority // PriorityAuto derives from the due date
	Category domain.Category
}

// List returns the user's tasks, creation order ascending, narrowed by
// the filter. Pure read.
func (s *TaskService) List(ctx context.Context, userID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.tasksFor(userID).ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Create persists a new task. Priority Auto (or unset) is resolved via
// the due-date rule.
func (s *TaskService) Create(ctx context.Context, userID int64, in CreateTaskInput) (domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Task{}, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	priority := in.Priority
	if priority == "" || priority == domain.PriorityAuto {
		priority = SuggestPriority(in.Due, s.now())
	}

	category := in.Category
	if category == "" {
		category = domain.CategoryOther
	}

	t := domain.Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Desc:      strings.TrimSpace(in.Desc),
		Due:       in.Due,
		Priority:  priority,
		Category:  category,
		Done:      false,
		CreatedAt: s.now(),
	}

	if err := s.tasksFor(userID).CreateTask(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// Update applies the patch to the user's task. A genuine false->true
// done transition sets the completion timestamp and awards points and
// streak in the same transaction; re-completing an already-done task
// changes nothing.
func (s *TaskService) Update(ctx context.Context, userID int64, taskID string, patch domain.TaskPatch) (domain.Task, error) {
	now := s.now()

	if s.isGuest(userID) {
		return s.updateGuest(ctx, taskID, patch, now)
	}

	var updated domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.Tasks().GetTask(ctx, userID, taskID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: unknown task", ErrNotFound)
			}
			return err
		}

		completedNow, err := applyPatch(&t, patch, now)
		if err != nil {
			return err
		}

		if err := tx.Tasks().UpdateTask(ctx, t); err != nil {
			return err
		}

		if completedNow {
			if err := s.gamify(ctx, tx, userID, t.Priority, now); err != nil {
				return err
			}
		}

		updated = t
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return updated, nil
}

// Delete removes the task when it exists and is owned by userID.
// Deleting a missing or foreign task is treated as already satisfied.
func (s *TaskService) Delete(ctx context.Context, userID int64, taskID string) error {
	return s.tasksFor(userID).DeleteTask(ctx, userID, taskID)
}

// gamify awards completion points and advances the streak inside the
// caller's transaction, so the task write and the award land together.
func (s *TaskService) gamify(ctx context.Context, tx store.Tx, userID int64, priority domain.Priority, now time.Time) error {
	user, err := tx.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	points := user.Points + completionPoints(priority)
	streak := nextStreak(user.Streak, user.LastCompleteDate, now)

	return tx.Users().UpdateGamification(ctx, userID, points, streak, now)
}

// updateGuest is the fallback-file path: same patch semantics, no
// transaction and no gamification because guest data has no user row.
func (s *TaskService) updateGuest(ctx context.Context, taskID string, patch domain.TaskPatch, now time.Time) (domain.Task, error) {
	t, err := s.Guest.GetTask(ctx, domain.GuestUserID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, fmt.Errorf("%w: unknown task", ErrNotFound)
		}
		return domain.Task{}, err
	}

	if _, err := applyPatch(&t, patch, now); err != nil {
		return domain.Task{}, err
	}

	if err := s.Guest.UpdateTask(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// applyPatch mutates t with the patch's set fields and reports whether
// this update is a genuine completion. The completion timestamp is
// written exactly once; later edits never move or clear it, except an
// explicit re-open (done=false) which clears it to keep the timestamp
// tied to the done flag.
func applyPatch(t *domain.Task, patch domain.TaskPatch, now time.Time) (completedNow bool, err error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return false, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		t.Title = title
	}
	if patch.Desc != nil {
		t.Desc = strings.TrimSpace(*patch.Desc)
	}
	if patch.ClearDue {
		t.Due = nil
	} else if patch.Due != nil {
		t.Due = patch.Due
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}

	if patch.Done != nil {
		switch {
		case *patch.Done && !t.Done:
			t.Done = true
			completed := now
			t.CompletedAt = &completed
			completedNow = true
		case !*patch.Done && t.Done:
			t.Done = false
			t.CompletedAt = nil
		}
	}

	return completedNow, nil
}

// SuggestPriority applies the advisory due-date rule: no due date is
// Low, due today or overdue is High, due within the next three days is
// Medium, anything further out is Low.
func SuggestPriority(due *time.Time, today time.Time) domain.Priority {
	if due == nil {
		return domain.PriorityLow
	}

	days := daysBetween(today, *due)
	switch {
	case days <= 0:
		return domain.PriorityHigh
	case days <= 3:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// daysBetween counts whole calendar days from a to b, ignoring the
// time-of-day component.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
