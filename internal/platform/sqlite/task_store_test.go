package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/migrate"
	"github.com/phrazzld/task-api/internal/platform/sqlite"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, migrate.Up(ctx, db, migrate.SQLite, nil))
	return db
}

func int32Ptr(v int32) *int32 {
	return &v
}

func TestTaskStore_CreateAndGet(t *testing.T) {
	t.Parallel()
	taskStore := sqlite.NewTaskStore(setupTestDB(t), nil)
	ctx := context.Background()

	id, err := taskStore.Create(ctx, domain.TaskInput{Name: "write report", Priority: int32Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	tasks, err := taskStore.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.Task{ID: id, Name: "write report", Priority: int32Ptr(3)}, tasks[0])
}

func TestTaskStore_NullPriority(t *testing.T) {
	t.Parallel()
	taskStore := sqlite.NewTaskStore(setupTestDB(t), nil)
	ctx := context.Background()

	id, err := taskStore.Create(ctx, domain.TaskInput{Name: "no priority"})
	require.NoError(t, err)

	tasks, err := taskStore.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].Priority)
}

func TestTaskStore_GetMissing(t *testing.T) {
	t.Parallel()
	taskStore := sqlite.NewTaskStore(setupTestDB(t), nil)

	tasks, err := taskStore.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskStore_List(t *testing.T) {
	t.Parallel()
	taskStore := sqlite.NewTaskStore(setupTestDB(t), nil)
	ctx := context.Background()

	t.Run("empty table", func(t *testing.T) {
		tasks, err := taskStore.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("newest first", func(t *testing.T) {
		for _, name := range []string{"first", "second", "third"} {
			_, err := taskStore.Create(ctx, domain.TaskInput{Name: name})
			require.NoError(t, err)
		}

		tasks, err := taskStore.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "third", tasks[0].Name)
		assert.Equal(t, "second", tasks[1].Name)
		assert.Equal(t, "first", tasks[2].Name)
	})
}

func TestTaskStore_Update(t *testing.T) {
	t.Parallel()
	taskStore := sqlite.NewTaskStore(setupTestDB(t), nil)
	ctx := context.Background()

	id, err := taskStore.Create(ctx, domain.TaskInput{Name: "draft", Priority: int32Ptr(1)})
	require.NoError(t, err)

	t.Run("replaces name and priority", func(t *testing.T) {
		require.NoError(t, taskStore.Update(ctx, id, domain.TaskInput{Name: "final", Priority: int32Ptr(9)}))

		tasks, err := taskStore.GetByID(ctx, id)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "final", tasks[0].Name)
		assert.Equal(t, int32Ptr(9), tasks[0].Priority)
	})

	t.Run("omitted priority is cleared", func(t *testing.T) {
		require.NoError(t, taskStore.Update(ctx, id, domain.TaskInput{Name: "final"}))

		tasks, err := taskStore.GetByID(ctx, id)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Nil(t, tasks[0].Priority)
	})

	t.Run("missing id is a no-op", func(t *testing.T) {
		require.NoError(t, taskStore.Update(ctx, 999, domain.TaskInput{Name: "ghost"}))

		tasks, err := taskStore.List(ctx)
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})
}

func TestTaskStore_Delete(t *testing.T) {
	t.Parallel()
	taskStore := sqlite.NewTaskStore(setupTestDB(t), nil)
	ctx := context.Background()

	id, err := taskStore.Create(ctx, domain.TaskInput{Name: "temporary"})
	require.NoError(t, err)

	require.NoError(t, taskStore.Delete(ctx, id))
	require.NoError(t, taskStore.Delete(ctx, id), "second delete should be a no-op")

	tasks, err := taskStore.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskStore_IDsNotReused(t *testing.T) {
	t.Parallel()
	taskStore := sqlite.NewTaskStore(setupTestDB(t), nil)
	ctx := context.Background()

	first, err := taskStore.Create(ctx, domain.TaskInput{Name: "first"})
	require.NoError(t, err)
	require.NoError(t, taskStore.Delete(ctx, first))

	second, err := taskStore.Create(ctx, domain.TaskInput{Name: "second"})
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestTaskStore_ErrorsKeepDriverMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("constraint violation", func(t *testing.T) {
		db := setupTestDB(t)

		_, rawErr := db.ExecContext(ctx, "INSERT INTO tasks (name) VALUES (NULL)")
		require.Error(t, rawErr)

		mapped := sqlite.MapError(rawErr)
		assert.Equal(t, rawErr.Error(), mapped.Error())
		assert.True(t, store.IsConstraintError(mapped))
	})

	t.Run("missing table", func(t *testing.T) {
		db := setupTestDB(t)
		_, err := db.ExecContext(ctx, "DROP TABLE tasks")
		require.NoError(t, err)

		taskStore := sqlite.NewTaskStore(db, nil)
		_, err = taskStore.List(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no such table")
		assert.False(t, store.IsConstraintError(err))
	})
}
