package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, st store.Store, email string) int64 {
	t.Helper()

	id, err := st.Users().CreateUser(context.Background(), domain.User{
		Email:     email,
		Name:      "Test User",
		Provider:  domain.ProviderLocal,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "tasks@example.com")

	today := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc := &TaskService{Store: st, Now: fixedClock(today)}

	t.Run("due today derives high priority", func(t *testing.T) {
		due := today
		created, err := svc.Create(ctx, userID, CreateTaskInput{
			Title: "Pay rent",
			Due:   &due,
		})
		require.NoError(t, err)
		require.Equal(t, domain.PriorityHigh, created.Priority)
		require.Equal(t, domain.CategoryOther, created.Category)
		require.NotEmpty(t, created.ID)
		require.False(t, created.Done)
	})

	t.Run("due in three days derives medium", func(t *testing.T) {
		due := today.AddDate(0, 0, 3)
		created, err := svc.Create(ctx, userID, CreateTaskInput{Title: "Prep slides", Due: &due})
		require.NoError(t, err)
		require.Equal(t, domain.PriorityMedium, created.Priority)
	})

	t.Run("no due date derives low", func(t *testing.T) {
		created, err := svc.Create(ctx, userID, CreateTaskInput{Title: "Read a book"})
		require.NoError(t, err)
		require.Equal(t, domain.PriorityLow, created.Priority)
	})

	t.Run("explicit priority wins over the rule", func(t *testing.T) {
		created, err := svc.Create(ctx, userID, CreateTaskInput{
			Title:    "Water plants",
			Priority: domain.PriorityHigh,
			Category: domain.CategoryPersonal,
		})
		require.NoError(t, err)
		require.Equal(t, domain.PriorityHigh, created.Priority)
		require.Equal(t, domain.CategoryPersonal, created.Category)
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, userID, CreateTaskInput{Title: "   "})
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestCompleteTaskAwardsPoints(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "points@example.com")

	today := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc := &TaskService{Store: st, Now: fixedClock(today)}

	due := today
	created, err := svc.Create(ctx, userID, CreateTaskInput{Title: "Pay rent", Due: &due})
	require.NoError(t, err)
	require.Equal(t, domain.PriorityHigh, created.Priority)

	updated, err := svc.Update(ctx, userID, created.ID, domain.TaskPatch{Done: boolPtr(true)})
	require.NoError(t, err)
	require.True(t, updated.Done)
	require.NotNil(t, updated.CompletedAt)

	user, err := st.Users().GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 15, user.Points)
	require.Equal(t, 1, user.Streak)
	require.NotNil(t, user.LastCompleteDate)

	t.Run("re-completing is a no-op", func(t *testing.T) {
		again, err := svc.Update(ctx, userID, created.ID, domain.TaskPatch{Done: boolPtr(true)})
		require.NoError(t, err)
		require.Equal(t, updated.CompletedAt.Unix(), again.CompletedAt.Unix())

		user, err := st.Users().GetUserByID(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, 15, user.Points)
		require.Equal(t, 1, user.Streak)
	})

	t.Run("re-opening clears the completion timestamp", func(t *testing.T) {
		reopened, err := svc.Update(ctx, userID, created.ID, domain.TaskPatch{Done: boolPtr(false)})
		require.NoError(t, err)
		require.False(t, reopened.Done)
		require.Nil(t, reopened.CompletedAt)
	})
}

func TestStreakProgression(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "streak@example.com")

	day1 := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc := &TaskService{Store: st, Now: fixedClock(day1)}

	complete := func(title string) {
		created, err := svc.Create(ctx, userID, CreateTaskInput{Title: title})
		require.NoError(t, err)
		_, err = svc.Update(ctx, userID, created.ID, domain.TaskPatch{Done: boolPtr(true)})
		require.NoError(t, err)
	}

	complete("day one")

	user, err := st.Users().GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, user.Streak)

	t.Run("next-day completion extends streak", func(t *testing.T) {
		svc.Now = fixedClock(day1.AddDate(0, 0, 1))
		complete("day two")

		user, err := st.Users().GetUserByID(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, 2, user.Streak)
	})

	t.Run("skipping a day resets the streak", func(t *testing.T) {
		svc.Now = fixedClock(day1.AddDate(0, 0, 4))
		complete("after a gap")

		user, err := st.Users().GetUserByID(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, 1, user.Streak)
	})
}

func TestUpdateTaskFields(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "patch@example.com")
	svc := &TaskService{Store: st}

	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, userID, CreateTaskInput{Title: "Draft report", Due: &due})
	require.NoError(t, err)

	t.Run("patches only the set fields", func(t *testing.T) {
		p := domain.PriorityLow
		updated, err := svc.Update(ctx, userID, created.ID, domain.TaskPatch{
			Title:    strPtr("Draft quarterly report"),
			Priority: &p,
		})
		require.NoError(t, err)
		require.Equal(t, "Draft quarterly report", updated.Title)
		require.Equal(t, domain.PriorityLow, updated.Priority)
		require.NotNil(t, updated.Due)
	})

	t.Run("clear due removes the date", func(t *testing.T) {
		updated, err := svc.Update(ctx, userID, created.ID, domain.TaskPatch{ClearDue: true})
		require.NoError(t, err)
		require.Nil(t, updated.Due)
	})

	t.Run("blank title patch is rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, userID, created.ID, domain.TaskPatch{Title: strPtr(" ")})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown task reports not found", func(t *testing.T) {
		_, err := svc.Update(ctx, userID, "no-such-id", domain.TaskPatch{ClearDue: true})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTaskOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "owner@example.com")
	intruder := seedUser(t, st, "intruder@example.com")
	svc := &TaskService{Store: st}

	created, err := svc.Create(ctx, owner, CreateTaskInput{Title: "Private task"})
	require.NoError(t, err)

	t.Run("foreign update reports not found", func(t *testing.T) {
		_, err := svc.Update(ctx, intruder, created.ID, domain.TaskPatch{Done: boolPtr(true)})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("foreign delete leaves the task intact", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, intruder, created.ID))

		still, err := svc.List(ctx, owner, domain.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, still, 1)
	})

	t.Run("foreign list sees nothing", func(t *testing.T) {
		tasks, err := svc.List(ctx, intruder, domain.TaskFilter{})
		require.NoError(t, err)
		require.Empty(t, tasks)
	})
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := seedUser(t, st, "filters@example.com")
	svc := &TaskService{Store: st}

	_, err := svc.Create(ctx, userID, CreateTaskInput{
		Title: "Buy groceries", Category: domain.CategoryShopping, Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	report, err := svc.Create(ctx, userID, CreateTaskInput{
		Title: "Write report", Category: domain.CategoryWork, Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, userID, report.ID, domain.TaskPatch{Done: boolPtr(true)})
	require.NoError(t, err)

	t.Run("text search matches title", func(t *testing.T) {
		tasks, err := svc.List(ctx, userID, domain.TaskFilter{Query: "grocer"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, "Buy groceries", tasks[0].Title)
	})

	t.Run("status filter splits pending and done", func(t *testing.T) {
		pending, err := svc.List(ctx, userID, domain.TaskFilter{Status: "pending"})
		require.NoError(t, err)
		require.Len(t, pending, 1)

		done, err := svc.List(ctx, userID, domain.TaskFilter{Status: "done"})
		require.NoError(t, err)
		require.Len(t, done, 1)
		require.Equal(t, "Write report", done[0].Title)
	})

	t.Run("category and priority narrow results", func(t *testing.T) {
		tasks, err := svc.List(ctx, userID, domain.TaskFilter{
			Category: domain.CategoryWork,
			Priority: domain.PriorityHigh,
		})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
	})
}
