package tasks

import (
	"context"
	"errors"
	"time"
)

// DefaultTitle names tasks created without a title.
const DefaultTitle = "New task"

var (
	// ErrNotFound is returned when a task does not exist for the user.
	ErrNotFound = errors.New("tasks: task not found")
	// ErrInvalidTask is returned when a task is missing its id or owner.
	ErrInvalidTask = errors.New("tasks: invalid task")
)

// Task is a personal todo item owned by one user.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.IsCompleted == nil
}

// Store persists tasks. Every lookup is scoped to the owning user.
type Store interface {
	ListTasks(ctx context.Context, userID string) ([]Task, error)
	GetTask(ctx context.Context, userID, id string) (Task, error)
	CreateTask(ctx context.Context, task Task) error
	UpdateTask(ctx context.Context, task Task) error
	DeleteTask(ctx context.Context, userID, id string) error
}

func validate(task Task) error {
	if task.ID == "" || task.UserID == "" {
		return ErrInvalidTask
	}
	return nil
}
