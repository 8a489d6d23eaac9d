package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Methods without a configured Fn return empty results and no error.
type MockTaskStore struct {
	ListFn    func(ctx context.Context) ([]domain.Task, error)
	GetByIDFn func(ctx context.Context, id int64) ([]domain.Task, error)
	CreateFn  func(ctx context.Context, input domain.TaskInput) (int64, error)
	UpdateFn  func(ctx context.Context, id int64, input domain.TaskInput) error
	DeleteFn  func(ctx context.Context, id int64) error

	mu    sync.Mutex
	calls int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Calls reports how many store methods have been invoked.
func (m *MockTaskStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockTaskStore) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	m.record()
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []domain.Task{}, nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) ([]domain.Task, error) {
	m.record()
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return []domain.Task{}, nil
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, input domain.TaskInput) (int64, error) {
	m.record()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input)
	}
	return 0, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, id int64, input domain.TaskInput) error {
	m.record()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, input)
	}
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	m.record()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
