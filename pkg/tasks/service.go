package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures a Service.
type Options struct {
	Store  Store
	Now    func() time.Time
	NewID  func() string
	Logger *zap.Logger
}

// Service implements the task operations behind /api/tasks.
type Service struct {
	store  Store
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// NewService wires a service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		store:  opts.Store,
		now:    opts.Now,
		newID:  opts.NewID,
		logger: opts.Logger,
	}
}

// List returns the user's tasks.
func (s *Service) List(ctx context.Context, userID string) ([]Task, error) {
	if userID == "" {
		return nil, ErrInvalidTask
	}
	return s.store.ListTasks(ctx, userID)
}

// Create stores a new open task. A blank title falls back to DefaultTitle.
func (s *Service) Create(ctx context.Context, userID, title string) (Task, error) {
	if userID == "" {
		return Task{}, ErrInvalidTask
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	now := s.now().UTC()
	task := Task{
		ID:        s.newID(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return Task{}, fmt.Errorf("tasks: create: %w", err)
	}
	s.logger.Debug("task created", zap.String("user_id", userID), zap.String("task_id", task.ID))
	return task, nil
}

// Update applies a partial patch.
func (s *Service) Update(ctx context.Context, userID, id string, patch TaskPatch) (Task, error) {
	task, err := s.store.GetTask(ctx, userID, id)
	if err != nil {
		return Task{}, err
	}
	if patch.Empty() {
		return task, nil
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			title = DefaultTitle
		}
		task.Title = title
	}
	if patch.IsCompleted != nil {
		task.IsCompleted = *patch.IsCompleted
	}
	task.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return Task{}, fmt.Errorf("tasks: update %s: %w", id, err)
	}
	return task, nil
}

// Delete removes a task. Unknown ids return ErrNotFound.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.store.DeleteTask(ctx, userID, id)
}
