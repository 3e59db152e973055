package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement
// it. Sub-repositories keep concerns tidy and let the same service code
// run against a plain connection or a transaction.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: commit when fn returns
	// nil, rollback otherwise. This is the recommended way to make a
	// task completion and its gamification update land together.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Maintain performs periodic storage upkeep (statistics refresh,
	// WAL checkpointing). Safe to call while the store is in use.
	Maintain(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repositories plus
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail looks up a user by normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user and returns the store-assigned id.
	// Duplicate emails return ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// UpdateGamification persists points, streak and last completion
	// date after a task completion.
	UpdateGamification(ctx context.Context, userID int64, points, streak int, lastComplete time.Time) error
}

type Tasks interface {
	// GetTask returns the task only when owned by userID.
	GetTask(ctx context.Context, userID int64, id string) (domain.Task, error)

	// ListTasks returns all of userID's tasks ordered by creation time
	// ascending.
	ListTasks(ctx context.Context, userID int64) ([]domain.Task, error)

	// CreateTask inserts a new task (id generated by the service).
	CreateTask(ctx context.Context, t domain.Task) error

	// UpdateTask rewrites the task row, scoped to its owner.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask removes the task when owned by userID, and is a no-op
	// otherwise.
	DeleteTask(ctx context.Context, userID int64, id string) error

	// CountCompleted returns how many of userID's tasks are done.
	CountCompleted(ctx context.Context, userID int64) (int, error)
}
