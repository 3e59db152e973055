package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, name, password_hash, provider, points, streak, last_complete_date, created_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, name, password_hash, provider, points, streak, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Email,
		u.Name,
		mapOptionalString(u.PasswordHash),
		u.Provider,
		u.Points,
		u.Streak,
		fmtTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrAlreadyExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *usersRepo) UpdateGamification(
	ctx context.Context,
	userID int64,
	points, streak int,
	lastComplete time.Time,
) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET points = ?, streak = ?, last_complete_date = ? WHERE id = ?`,
		points,
		streak,
		lastComplete.Format(time.DateOnly),
		userID,
	)
	return err
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u            domain.User
		passwordHash sql.NullString
		lastComplete sql.NullString
		createdAt    string
	)

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&passwordHash,
		&u.Provider,
		&u.Points,
		&u.Streak,
		&lastComplete,
		&createdAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.PasswordHash = mapNullStringPtr(passwordHash)
	if u.LastCompleteDate, err = parseNullDate(lastComplete); err != nil {
		return domain.User{}, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
