package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// CommentStore defines the interface for comment persistence.
// Loaded comments carry AuthorEmail.
type CommentStore interface {
	// Create saves a new comment. Returns ErrInvalidEntity when the task or
	// author does not exist.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// Delete returns ErrCommentNotFound if the comment does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByTask returns a task's comments, oldest first.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error)
}
