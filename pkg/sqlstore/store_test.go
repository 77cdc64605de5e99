package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-deskboard/pkg/tasks"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	store, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "dsn")
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestRebind(t *testing.T) {
	pg := New(nil, DriverPostgres)
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))
	lite := New(nil, DriverSQLite)
	assert.Equal(t, "x = ?", lite.rebind("x = ?"))
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestLayoutUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.LoadLayout(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveLayout(ctx, "u1", []byte(`{"widgets":[]}`)))
	require.NoError(t, store.SaveLayout(ctx, "u1", []byte(`{"widgets":[],"isEditing":true}`)))

	blob, ok, err := store.LoadLayout(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"widgets":[],"isEditing":true}`, string(blob))

	assert.Error(t, store.SaveLayout(ctx, "", []byte(`{}`)))
}

func TestTaskLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)

	task := tasks.Task{ID: "t1", UserID: "u1", Title: "Plan week", CreatedAt: created, UpdatedAt: created}
	require.NoError(t, store.CreateTask(ctx, task))
	require.NoError(t, store.CreateTask(ctx, tasks.Task{ID: "t2", UserID: "u2", Title: "Other", CreatedAt: created, UpdatedAt: created}))

	got, err := store.GetTask(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, task, got)

	got.IsCompleted = true
	got.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, store.UpdateTask(ctx, got))

	list, err := store.ListTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsCompleted)
	assert.Equal(t, created.Add(time.Hour), list[0].UpdatedAt)

	assert.ErrorIs(t, store.DeleteTask(ctx, "u2", "t1"), tasks.ErrNotFound)
	require.NoError(t, store.DeleteTask(ctx, "u1", "t1"))
	_, err = store.GetTask(ctx, "u1", "t1")
	assert.ErrorIs(t, err, tasks.ErrNotFound)
}

func TestStoreBacksTaskService(t *testing.T) {
	store := newTestStore(t)
	svc := tasks.NewService(tasks.Options{Store: store})
	ctx := context.Background()

	task, err := svc.Create(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, tasks.DefaultTitle, task.Title)

	done := true
	_, err = svc.Update(ctx, "u1", task.ID, tasks.TaskPatch{IsCompleted: &done})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "u1", "missing", tasks.TaskPatch{IsCompleted: &done})
	assert.ErrorIs(t, err, tasks.ErrNotFound)
}
