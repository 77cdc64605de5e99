package tasks

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps tasks in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]map[string]Task
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: map[string]map[string]Task{}}
}

// ListTasks returns the user's tasks oldest first.
func (s *MemoryStore) ListTasks(_ context.Context, userID string) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, 0, len(s.tasks[userID]))
	for _, task := range s.tasks[userID] {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// GetTask implements Store.
func (s *MemoryStore) GetTask(_ context.Context, userID, id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[userID][id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return task, nil
}

// CreateTask implements Store.
func (s *MemoryStore) CreateTask(_ context.Context, task Task) error {
	if err := validate(task); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tasks[task.UserID] == nil {
		s.tasks[task.UserID] = map[string]Task{}
	}
	s.tasks[task.UserID][task.ID] = task
	return nil
}

// UpdateTask implements Store.
func (s *MemoryStore) UpdateTask(_ context.Context, task Task) error {
	if err := validate(task); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.UserID][task.ID]; !ok {
		return ErrNotFound
	}
	s.tasks[task.UserID][task.ID] = task
	return nil
}

// DeleteTask implements Store.
func (s *MemoryStore) DeleteTask(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[userID][id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks[userID], id)
	return nil
}
