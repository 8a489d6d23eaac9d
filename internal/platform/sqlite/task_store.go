package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

const (
	listTasksQuery = `
		SELECT id, name, priority
		FROM tasks
		ORDER BY id DESC
	`

	getTaskQuery = `
		SELECT id, name, priority
		FROM tasks
		WHERE id = ?
	`

	insertTaskQuery = `
		INSERT INTO tasks (name, priority)
		VALUES (?, ?)
	`

	updateTaskQuery = `
		UPDATE tasks
		SET name = ?, priority = ?
		WHERE id = ?
	`

	deleteTaskQuery = `
		DELETE FROM tasks
		WHERE id = ?
	`
)

// TaskStore implements store.TaskStore on an SQLite database.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore over db, which stays owned by the caller.
// If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listTasksQuery)
	if err != nil {
		err = MapError(err)
		logStoreError(ctx, log, "failed to list tasks", err)
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	tasks, err := scanTasks(rows)
	if err != nil {
		logStoreError(ctx, log, "failed to read task rows", err)
		return nil, err
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, getTaskQuery, id)
	if err != nil {
		err = MapError(err)
		logStoreError(ctx, log, "failed to get task", err, slog.Int64("task_id", id))
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	tasks, err := scanTasks(rows)
	if err != nil {
		logStoreError(ctx, log, "failed to read task row", err, slog.Int64("task_id", id))
		return nil, err
	}

	if len(tasks) == 0 {
		log.Debug("task not found", slog.Int64("task_id", id))
	}
	return tasks, nil
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, input domain.TaskInput) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, insertTaskQuery, input.Name, nullablePriority(input.Priority))
	if err != nil {
		err = MapError(err)
		logStoreError(ctx, log, "failed to create task", err)
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		logStoreError(ctx, log, "failed to read new task id", err)
		return 0, err
	}

	log.Info("task created", slog.Int64("task_id", id))
	return id, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, id int64, input domain.TaskInput) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, updateTaskQuery, input.Name, nullablePriority(input.Priority), id)
	if err != nil {
		err = MapError(err)
		logStoreError(ctx, log, "failed to update task", err, slog.Int64("task_id", id))
		return err
	}

	logNoMatch(log, result, "update", id)
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		err = MapError(err)
		logStoreError(ctx, log, "failed to delete task", err, slog.Int64("task_id", id))
		return err
	}

	logNoMatch(log, result, "delete", id)
	return nil
}

func nullablePriority(priority *int32) sql.NullInt32 {
	if priority == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *priority, Valid: true}
}

func scanTasks(rows *sql.Rows) ([]domain.Task, error) {
	tasks := []domain.Task{}

	for rows.Next() {
		var task domain.Task
		var priority sql.NullInt32

		if err := rows.Scan(&task.ID, &task.Name, &priority); err != nil {
			return nil, err
		}
		if priority.Valid {
			p := priority.Int32
			task.Priority = &p
		}

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

func logNoMatch(log *slog.Logger, result sql.Result, operation string, id int64) {
	rowsAffected, err := result.RowsAffected()
	if err != nil || rowsAffected > 0 {
		return
	}

	log.Debug("no task found with ID, treating as no-op",
		slog.String("operation", operation),
		slog.Int64("task_id", id))
}
