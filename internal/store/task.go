package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Loaded tasks carry AuthorName and AssigneeName. Lists are ordered newest
// created first.
type TaskStore interface {
	// Create saves a new task. Returns ErrInvalidEntity when the author or
	// assignee does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update saves every mutable field of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task and its comments.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of all tasks.
	List(ctx context.Context, page Page) ([]*domain.Task, error)

	// ListByAuthorOrAssignee returns one page of the tasks userID authored
	// or is assigned to.
	ListByAuthorOrAssignee(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.Task, error)
}
