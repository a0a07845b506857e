package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/policy"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// CommentService provides comment operations with access control.
type CommentService interface {
	// AddComment posts content on a task the actor may comment on.
	AddComment(ctx context.Context, actor *domain.User, taskID uuid.UUID, content string) (*domain.Comment, error)

	// ListComments returns a task's comments, oldest first.
	ListComments(ctx context.Context, actor *domain.User, taskID uuid.UUID) ([]*domain.Comment, error)

	// DeleteComment removes a comment. Only its author or an admin may.
	DeleteComment(ctx context.Context, actor *domain.User, commentID uuid.UUID) error
}

type commentService struct {
	uow    store.UnitOfWork
	logger *slog.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(uow store.UnitOfWork, logger *slog.Logger) (CommentService, error) {
	if uow == nil {
		return nil, domain.NewValidationError("uow", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		uow:    uow,
		logger: logger.With(slog.String("component", "comment_service")),
	}, nil
}

func (s *commentService) AddComment(
	ctx context.Context,
	actor *domain.User,
	taskID uuid.UUID,
	content string,
) (*domain.Comment, error) {
	var created *domain.Comment
	err := s.uow.Do(ctx, func(ctx context.Context, tx store.Stores) error {
		task, err := tx.Tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := policy.CanCreateComment(actor, task); err != nil {
			return err
		}

		comment, err := domain.NewComment(task.ID, actor.ID, content)
		if err != nil {
			return err
		}
		if err := tx.Comments.Create(ctx, comment); err != nil {
			return err
		}
		created, err = tx.Comments.GetByID(ctx, comment.ID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "add", err)
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment added",
		slog.String("comment_id", created.ID.String()),
		slog.String("task_id", taskID.String()))
	return created, nil
}

func (s *commentService) ListComments(
	ctx context.Context,
	actor *domain.User,
	taskID uuid.UUID,
) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := s.uow.View(ctx, func(ctx context.Context, tx store.Stores) error {
		task, err := tx.Tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := policy.CanReadComments(actor, task); err != nil {
			return err
		}
		comments, err = tx.Comments.ListByTask(ctx, taskID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "list", err)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor *domain.User, commentID uuid.UUID) error {
	err := s.uow.Do(ctx, func(ctx context.Context, tx store.Stores) error {
		comment, err := tx.Comments.GetByID(ctx, commentID)
		if err != nil {
			return err
		}
		if err := policy.CanDeleteComment(actor, comment); err != nil {
			return err
		}
		return tx.Comments.Delete(ctx, commentID)
	})
	if err != nil {
		s.logFailure(ctx, "delete", err)
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment deleted",
		slog.String("comment_id", commentID.String()))
	return nil
}

func (s *commentService) logFailure(ctx context.Context, operation string, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if store.IsNotFoundError(err) || isClientError(err) {
		log.Debug("comment operation rejected",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return
	}
	log.Error("comment operation failed",
		slog.String("operation", operation),
		slog.String("error", redact.Error(err)))
}
