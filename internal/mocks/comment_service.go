package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// MockCommentService implements service.CommentService for testing
type MockCommentService struct {
	AddCommentFn    func(ctx context.Context, actor *domain.User, taskID uuid.UUID, content string) (*domain.Comment, error)
	ListCommentsFn  func(ctx context.Context, actor *domain.User, taskID uuid.UUID) ([]*domain.Comment, error)
	DeleteCommentFn func(ctx context.Context, actor *domain.User, commentID uuid.UUID) error

	// Default return values
	Comment      *domain.Comment
	Comments     []*domain.Comment
	DefaultError error
}

var _ service.CommentService = (*MockCommentService)(nil)

// AddComment implements the CommentService.AddComment method
func (m *MockCommentService) AddComment(
	ctx context.Context,
	actor *domain.User,
	taskID uuid.UUID,
	content string,
) (*domain.Comment, error) {
	if m.AddCommentFn != nil {
		return m.AddCommentFn(ctx, actor, taskID, content)
	}
	return m.Comment, m.DefaultError
}

// ListComments implements the CommentService.ListComments method
func (m *MockCommentService) ListComments(
	ctx context.Context,
	actor *domain.User,
	taskID uuid.UUID,
) ([]*domain.Comment, error) {
	if m.ListCommentsFn != nil {
		return m.ListCommentsFn(ctx, actor, taskID)
	}
	return m.Comments, m.DefaultError
}

// DeleteComment implements the CommentService.DeleteComment method
func (m *MockCommentService) DeleteComment(ctx context.Context, actor *domain.User, commentID uuid.UUID) error {
	if m.DeleteCommentFn != nil {
		return m.DeleteCommentFn(ctx, actor, commentID)
	}
	return m.DefaultError
}
