package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every method runs exactly one statement on a connection checked out for the
// duration of the call.
type TaskStore interface {
	// List returns all tasks ordered by ID, newest first.
	// Returns an empty, non-nil slice when there are no tasks.
	List(ctx context.Context) ([]domain.Task, error)

	// GetByID returns the tasks whose ID equals id: zero or one element.
	// A missing task is not an error.
	GetByID(ctx context.Context, id int64) ([]domain.Task, error)

	// Create inserts a task and returns the ID assigned by the database.
	Create(ctx context.Context, input domain.TaskInput) (int64, error)

	// Update replaces the name and priority of the task with the given ID.
	// Updating an ID that does not exist is a no-op, not an error.
	Update(ctx context.Context, id int64, input domain.TaskInput) error

	// Delete removes the task with the given ID.
	// Deleting an ID that does not exist is a no-op, not an error.
	Delete(ctx context.Context, id int64) error
}
