// Package jsonfile is the fallback task store used when no
// authenticated user context exists. Tasks live in a single indented
// JSON array file mirroring the export record shape, so the file stays
// interchangeable with JSON backups.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
)

// Store implements store.Tasks backed by a JSON file. It is not a full
// store.Store: guest data has no user rows and no gamification.
type Store struct {
	mu   sync.Mutex
	path string
}

var _ store.Tasks = (*Store)(nil)

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

func (s *Store) GetTask(ctx context.Context, userID int64, id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return domain.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return domain.Task{}, store.ErrNotFound
}

func (s *Store) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return nil, err
	}

	var owned []domain.Task
	for _, t := range tasks {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

func (s *Store) CreateTask(ctx context.Context, t domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return err
	}
	return s.save(append(tasks, t))
}

func (s *Store) UpdateTask(ctx context.Context, t domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == t.ID && tasks[i].UserID == t.UserID {
			tasks[i] = t
			return s.save(tasks)
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteTask(ctx context.Context, userID int64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return err
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID == id && t.UserID == userID {
			continue
		}
		kept = append(kept, t)
	}
	return s.save(kept)
}

func (s *Store) CountCompleted(ctx context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, t := range tasks {
		if t.UserID == userID && t.Done {
			count++
		}
	}
	return count, nil
}

// load reads the whole file. A missing or unreadable file yields an
// empty list, matching how earlier releases treated a corrupt fallback.
func (s *Store) load() ([]domain.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}

	var records []domain.TaskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil
	}

	tasks := make([]domain.Task, 0, len(records))
	for _, rec := range records {
		t, err := rec.Task()
		if err != nil {
			// Skip rows with mangled timestamps rather than losing the file.
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// save writes the whole file atomically via a temp file rename.
func (s *Store) save(tasks []domain.Task) error {
	records := make([]domain.TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.Record())
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".todos-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
