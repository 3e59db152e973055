package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, user_id, title, desc, due, priority, category, done, created_at, completed_at`

func (r *tasksRepo) GetTask(ctx context.Context, userID int64, id string) (domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return domain.Task{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Task{}, err
		}
		return domain.Task{}, mapNotFound(sql.ErrNoRows)
	}
	return scanTask(rows)
}

func (r *tasksRepo) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at ASC, id ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, desc, due, priority, category, done, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.UserID,
		t.Title,
		t.Desc,
		fmtNullDate(t.Due),
		string(t.Priority),
		string(t.Category),
		t.Done,
		fmtTime(t.CreatedAt),
		fmtNullTime(t.CompletedAt),
	)
	return err
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, desc = ?, due = ?, priority = ?, category = ?, done = ?, completed_at = ?
		 WHERE id = ? AND user_id = ?`,
		t.Title,
		t.Desc,
		fmtNullDate(t.Due),
		string(t.Priority),
		string(t.Category),
		t.Done,
		fmtNullTime(t.CompletedAt),
		t.ID,
		t.UserID,
	)
	return err
}

func (r *tasksRepo) DeleteTask(ctx context.Context, userID int64, id string) error {
	// Deleting a missing or foreign task is already satisfied, not an error.
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

func (r *tasksRepo) CountCompleted(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = ? AND done = 1`, userID).Scan(&count)
	return count, err
}

func scanTask(rows *sql.Rows) (domain.Task, error) {
	var (
		t           domain.Task
		desc        sql.NullString
		due         sql.NullString
		priority    sql.NullString
		category    sql.NullString
		completedAt sql.NullString
		createdAt   string
	)

	err := rows.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&desc,
		&due,
		&priority,
		&category,
		&t.Done,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}

	t.Desc = mapNullString(desc)
	t.Priority = domain.Priority(mapNullString(priority))
	t.Category = domain.Category(mapNullString(category))
	if t.Due, err = parseNullDate(due); err != nil {
		return domain.Task{}, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Task{}, err
	}
	if t.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}
