package postgres

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
		WHERE id = $1
	`

	insertTaskQuery = `
		INSERT INTO tasks (name, priority)
		VALUES ($1, $2)
		RETURNING id
	`

	updateTaskQuery = `
		UPDATE tasks
		SET name = $2, priority = $3
		WHERE id = $1
	`

	deleteTaskQuery = `
		DELETE FROM tasks
		WHERE id = $1
	`
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts the connection pool or a transaction, which stays owned by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
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
// A missing task yields an empty slice, never an error.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) ([]domain.Task, error) {
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
func (s *PostgresTaskStore) Create(ctx context.Context, input domain.TaskInput) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var id int64
	err := s.db.QueryRowContext(ctx, insertTaskQuery, input.Name, input.Priority).Scan(&id)
	if err != nil {
		err = MapError(err)
		logStoreError(ctx, log, "failed to create task", err)
		return 0, err
	}

	log.Info("task created", slog.Int64("task_id", id))
	return id, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, id int64, input domain.TaskInput) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, updateTaskQuery, id, input.Name, input.Priority)
	if err != nil {
		err = MapError(err)
		logStoreError(ctx, log, "failed to update task", err, slog.Int64("task_id", id))
		return err
	}

	logNoMatch(log, result, "update", id)
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
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

// scanTasks reads every row into a non-nil slice.
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

// logNoMatch records an update or delete that matched no row. The operation
// still succeeds: a missing ID is treated as a no-op.
func logNoMatch(log *slog.Logger, result sql.Result, operation string, id int64) {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Debug("rows affected unavailable",
			slog.String("operation", operation),
			slog.Int64("task_id", id))
		return
	}

	if rowsAffected == 0 {
		log.Debug("no task found with ID, treating as no-op",
			slog.String("operation", operation),
			slog.Int64("task_id", id))
	}
}
