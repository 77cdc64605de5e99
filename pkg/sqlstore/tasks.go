package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goliatone/go-deskboard/pkg/tasks"
)

const taskColumns = `id, user_id, title, is_completed, created_at, updated_at`

// ListTasks implements tasks.Store.
func (s *Store) ListTasks(ctx context.Context, userID string) ([]tasks.Task, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at, id`), userID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list tasks: %w", err)
	}
	defer rows.Close()
	out := []tasks.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: list tasks: %w", err)
	}
	return out, nil
}

// GetTask implements tasks.Store.
func (s *Store) GetTask(ctx context.Context, userID, id string) (tasks.Task, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND id = ?`), userID, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return tasks.Task{}, tasks.ErrNotFound
	}
	return task, err
}

// CreateTask implements tasks.Store.
func (s *Store) CreateTask(ctx context.Context, task tasks.Task) error {
	if task.ID == "" || task.UserID == "" {
		return tasks.ErrInvalidTask
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
		task.ID, task.UserID, task.Title, task.IsCompleted, toMillis(task.CreatedAt), toMillis(task.UpdatedAt))
	if err != nil {
		return fmt.Errorf("sqlstore: create task: %w", err)
	}
	return nil
}

// UpdateTask implements tasks.Store.
func (s *Store) UpdateTask(ctx context.Context, task tasks.Task) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE tasks SET title = ?, is_completed = ?, updated_at = ? WHERE user_id = ? AND id = ?`),
		task.Title, task.IsCompleted, toMillis(task.UpdatedAt), task.UserID, task.ID)
	if err != nil {
		return fmt.Errorf("sqlstore: update task: %w", err)
	}
	return expectOne(res)
}

// DeleteTask implements tasks.Store.
func (s *Store) DeleteTask(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM tasks WHERE user_id = ? AND id = ?`), userID, id)
	if err != nil {
		return fmt.Errorf("sqlstore: delete task: %w", err)
	}
	return expectOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (tasks.Task, error) {
	var (
		task             tasks.Task
		created, updated int64
	)
	if err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.IsCompleted, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tasks.Task{}, err
		}
		return tasks.Task{}, fmt.Errorf("sqlstore: scan task: %w", err)
	}
	task.CreatedAt = fromMillis(created)
	task.UpdatedAt = fromMillis(updated)
	return task, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: rows affected: %w", err)
	}
	if n == 0 {
		return tasks.ErrNotFound
	}
	return nil
}
