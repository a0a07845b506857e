package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn       func(ctx context.Context, actor *domain.User, input service.CreateTaskInput) (*domain.Task, error)
	GetTaskFn          func(ctx context.Context, actor *domain.User, taskID uuid.UUID) (*domain.Task, error)
	UpdateTaskFn       func(ctx context.Context, actor *domain.User, taskID uuid.UUID, input service.UpdateTaskInput) (*domain.Task, error)
	UpdateTaskStatusFn func(ctx context.Context, actor *domain.User, taskID uuid.UUID, status string) (*domain.Task, error)
	AssignTaskFn       func(ctx context.Context, actor *domain.User, taskID, assigneeID uuid.UUID) (*domain.Task, error)
	DeleteTaskFn       func(ctx context.Context, actor *domain.User, taskID uuid.UUID) error
	ListTasksFn        func(ctx context.Context, actor *domain.User, page, size int) ([]*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	actor *domain.User,
	input service.CreateTaskInput,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, actor, input)
	}
	return m.Task, m.DefaultError
}

// GetTask implements the TaskService.GetTask method
func (m *MockTaskService) GetTask(ctx context.Context, actor *domain.User, taskID uuid.UUID) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, actor, taskID)
	}
	return m.Task, m.DefaultError
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	actor *domain.User,
	taskID uuid.UUID,
	input service.UpdateTaskInput,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, actor, taskID, input)
	}
	return m.Task, m.DefaultError
}

// UpdateTaskStatus implements the TaskService.UpdateTaskStatus method
func (m *MockTaskService) UpdateTaskStatus(
	ctx context.Context,
	actor *domain.User,
	taskID uuid.UUID,
	status string,
) (*domain.Task, error) {
	if m.UpdateTaskStatusFn != nil {
		return m.UpdateTaskStatusFn(ctx, actor, taskID, status)
	}
	return m.Task, m.DefaultError
}

// AssignTask implements the TaskService.AssignTask method
func (m *MockTaskService) AssignTask(
	ctx context.Context,
	actor *domain.User,
	taskID, assigneeID uuid.UUID,
) (*domain.Task, error) {
	if m.AssignTaskFn != nil {
		return m.AssignTaskFn(ctx, actor, taskID, assigneeID)
	}
	return m.Task, m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, actor *domain.User, taskID uuid.UUID) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, actor, taskID)
	}
	return m.DefaultError
}

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(
	ctx context.Context,
	actor *domain.User,
	page, size int,
) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, actor, page, size)
	}
	return m.Tasks, m.DefaultError
}
