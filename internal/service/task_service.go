package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/cache"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/policy"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// CreateTaskInput carries the fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus // empty means PENDING
	Priority    domain.TaskPriority
	DueDate     time.Time
	AssigneeID  *uuid.UUID // admin only
}

// UpdateTaskInput carries a full task update. Empty Status or Priority and a
// zero DueDate keep the current value.
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     time.Time
}

// TaskService provides task operations with access control.
type TaskService interface {
	CreateTask(ctx context.Context, actor *domain.User, input CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, actor *domain.User, taskID uuid.UUID) (*domain.Task, error)
	UpdateTask(ctx context.Context, actor *domain.User, taskID uuid.UUID, input UpdateTaskInput) (*domain.Task, error)

	// UpdateTaskStatus parses status case-insensitively. The task is loaded
	// and the actor checked before the status value is.
	UpdateTaskStatus(ctx context.Context, actor *domain.User, taskID uuid.UUID, status string) (*domain.Task, error)

	AssignTask(ctx context.Context, actor *domain.User, taskID, assigneeID uuid.UUID) (*domain.Task, error)
	DeleteTask(ctx context.Context, actor *domain.User, taskID uuid.UUID) error

	// ListTasks returns one zero-based page of the tasks visible to actor,
	// newest first. Out-of-range pages are empty.
	ListTasks(ctx context.Context, actor *domain.User, page, size int) ([]*domain.Task, error)
}

type taskService struct {
	uow    store.UnitOfWork
	tasks  *cache.Cache[uuid.UUID, domain.Task]
	pages  *cache.Cache[string, []domain.Task]
	fills  cache.Generation
	logger *slog.Logger
}

// NewTaskService creates a new TaskService. Loaded tasks and task pages are
// cached according to cacheCfg.
func NewTaskService(
	uow store.UnitOfWork,
	cacheCfg config.CacheConfig,
	logger *slog.Logger,
) (TaskService, error) {
	if uow == nil {
		return nil, domain.NewValidationError("uow", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskService{
		uow:    uow,
		tasks:  cache.FromConfig[uuid.UUID, domain.Task](cacheCfg),
		pages:  cache.FromConfig[string, []domain.Task](cacheCfg),
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

func (s *taskService) CreateTask(
	ctx context.Context,
	actor *domain.User,
	input CreateTaskInput,
) (*domain.Task, error) {
	if err := policy.CanCreateTask(actor); err != nil {
		return nil, err
	}
	if input.AssigneeID != nil {
		if err := policy.CanAssignTask(actor); err != nil {
			return nil, err
		}
	}

	task, err := domain.NewTask(
		actor.ID, input.Title, input.Description, input.Status, input.Priority, input.DueDate)
	if err != nil {
		return nil, err
	}
	if input.AssigneeID != nil {
		task.Assign(*input.AssigneeID)
	}

	var created *domain.Task
	err = s.uow.Do(ctx, func(ctx context.Context, tx store.Stores) error {
		if task.AssigneeID != nil {
			if _, err := tx.Users.GetByID(ctx, *task.AssigneeID); err != nil {
				return err
			}
		}
		if err := tx.Tasks.Create(ctx, task); err != nil {
			return err
		}
		var err error
		created, err = tx.Tasks.GetByID(ctx, task.ID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "create", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidate(created.ID)
	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		slog.String("task_id", created.ID.String()),
		slog.String("author_id", actor.ID.String()))
	return created, nil
}

func (s *taskService) GetTask(ctx context.Context, actor *domain.User, taskID uuid.UUID) (*domain.Task, error) {
	if cached, ok := s.tasks.Get(taskID); ok {
		task := copyTask(cached)
		if err := policy.CanReadTask(actor, &task); err != nil {
			return nil, err
		}
		return &task, nil
	}

	token := s.fills.Begin()
	var task *domain.Task
	err := s.uow.View(ctx, func(ctx context.Context, tx store.Stores) error {
		var err error
		task, err = tx.Tasks.GetByID(ctx, taskID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "get", err)
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	s.fills.Fill(token, func() { s.tasks.Add(task.ID, copyTask(*task)) })

	if err := policy.CanReadTask(actor, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) UpdateTask(
	ctx context.Context,
	actor *domain.User,
	taskID uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	return s.mutate(ctx, "update", taskID, func(ctx context.Context, tx store.Stores, task *domain.Task) error {
		if err := policy.CanUpdateTask(actor, task); err != nil {
			return err
		}

		status, priority, dueDate := input.Status, input.Priority, input.DueDate
		if status == "" {
			status = task.Status
		}
		if priority == "" {
			priority = task.Priority
		}
		if dueDate.IsZero() {
			dueDate = task.DueDate
		}
		return task.Update(input.Title, input.Description, status, priority, dueDate)
	})
}

func (s *taskService) UpdateTaskStatus(
	ctx context.Context,
	actor *domain.User,
	taskID uuid.UUID,
	status string,
) (*domain.Task, error) {
	return s.mutate(ctx, "update status", taskID, func(ctx context.Context, tx store.Stores, task *domain.Task) error {
		if err := policy.CanUpdateTaskStatus(actor, task); err != nil {
			return err
		}
		parsed, err := domain.ParseTaskStatus(status)
		if err != nil {
			return err
		}
		return task.UpdateStatus(parsed)
	})
}

func (s *taskService) AssignTask(
	ctx context.Context,
	actor *domain.User,
	taskID, assigneeID uuid.UUID,
) (*domain.Task, error) {
	if err := policy.CanAssignTask(actor); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "assign", taskID, func(ctx context.Context, tx store.Stores, task *domain.Task) error {
		if _, err := tx.Users.GetByID(ctx, assigneeID); err != nil {
			return err
		}
		task.Assign(assigneeID)
		return nil
	})
}

// mutate loads a task, applies change, saves it and returns the reloaded
// task, all in one unit of work.
func (s *taskService) mutate(
	ctx context.Context,
	operation string,
	taskID uuid.UUID,
	change func(ctx context.Context, tx store.Stores, task *domain.Task) error,
) (*domain.Task, error) {
	var updated *domain.Task
	err := s.uow.Do(ctx, func(ctx context.Context, tx store.Stores) error {
		task, err := tx.Tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := change(ctx, tx, task); err != nil {
			return err
		}
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}
		updated, err = tx.Tasks.GetByID(ctx, taskID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, operation, err)
		return nil, fmt.Errorf("failed to %s task: %w", operation, err)
	}

	s.invalidate(taskID)
	logger.FromContextOrDefault(ctx, s.logger).Debug("task changed",
		slog.String("operation", operation),
		slog.String("task_id", taskID.String()))
	return updated, nil
}

func (s *taskService) DeleteTask(ctx context.Context, actor *domain.User, taskID uuid.UUID) error {
	if err := policy.CanDeleteTask(actor); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx store.Stores) error {
		return tx.Tasks.Delete(ctx, taskID)
	})
	if err != nil {
		s.logFailure(ctx, "delete", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.invalidate(taskID)
	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.String("task_id", taskID.String()))
	return nil
}

func (s *taskService) ListTasks(
	ctx context.Context,
	actor *domain.User,
	page, size int,
) ([]*domain.Task, error) {
	scope, err := policy.TaskListScope(actor)
	if err != nil {
		return nil, err
	}

	p := store.Page{Number: page, Size: size}
	if p.Empty() {
		return []*domain.Task{}, nil
	}

	key := fmt.Sprintf("%s:%d:%d", scope.Key(), p.Number, p.Limit())
	if cached, ok := s.pages.Get(key); ok {
		return fromPage(cached), nil
	}

	token := s.fills.Begin()
	var tasks []*domain.Task
	err = s.uow.View(ctx, func(ctx context.Context, tx store.Stores) error {
		var err error
		if scope.All {
			tasks, err = tx.Tasks.List(ctx, p)
		} else {
			tasks, err = tx.Tasks.ListByAuthorOrAssignee(ctx, scope.UserID, p)
		}
		return err
	})
	if err != nil {
		s.logFailure(ctx, "list", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	s.fills.Fill(token, func() { s.pages.Add(key, toPage(tasks)) })
	return tasks, nil
}

// invalidate drops everything a write to taskID may have made stale. Reads
// that started before it will not repopulate the caches.
func (s *taskService) invalidate(taskID uuid.UUID) {
	s.fills.Invalidate(func() {
		s.tasks.Remove(taskID)
		s.pages.Purge()
	})
}

func (s *taskService) logFailure(ctx context.Context, operation string, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if store.IsNotFoundError(err) || isClientError(err) {
		log.Debug("task operation rejected",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return
	}
	log.Error("task operation failed",
		slog.String("operation", operation),
		slog.String("error", redact.Error(err)))
}

func copyTask(t domain.Task) domain.Task {
	if t.AssigneeID != nil {
		id := *t.AssigneeID
		t.AssigneeID = &id
	}
	return t
}

func toPage(tasks []*domain.Task) []domain.Task {
	page := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		page[i] = copyTask(*t)
	}
	return page
}

func fromPage(page []domain.Task) []*domain.Task {
	tasks := make([]*domain.Task, len(page))
	for i := range page {
		t := copyTask(page[i])
		tasks[i] = &t
	}
	return tasks
}
