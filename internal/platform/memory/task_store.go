package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

type taskStore struct {
	db       *DB
	readOnly bool
}

var _ store.TaskStore = (*taskStore)(nil)

func (s *taskStore) checkUsers(task *domain.Task) error {
	users := s.db.state.users
	if _, ok := users[task.AuthorID]; !ok {
		return fmt.Errorf("%w: author %s does not exist", store.ErrInvalidEntity, task.AuthorID)
	}
	if task.AssigneeID != nil {
		if _, ok := users[*task.AssigneeID]; !ok {
			return fmt.Errorf("%w: assignee %s does not exist", store.ErrInvalidEntity, *task.AssigneeID)
		}
	}
	return nil
}

// view copies a stored task and resolves its read-model fields.
func (s *taskStore) view(rec taskRecord) *domain.Task {
	task := rec.task
	task.AssigneeID = copyID(rec.task.AssigneeID)
	task.AssigneeName = ""
	if author, ok := s.db.state.users[task.AuthorID]; ok {
		task.AuthorName = author.FullName()
	}
	if task.AssigneeID != nil {
		if assignee, ok := s.db.state.users[*task.AssigneeID]; ok {
			task.AssigneeName = assignee.FullName()
		}
	}
	return &task
}

func (s *taskStore) Create(ctx context.Context, task *domain.Task) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if err := task.Validate(); err != nil {
		return err
	}
	if _, ok := s.db.state.tasks[task.ID]; ok {
		return fmt.Errorf("%w: task %s", store.ErrDuplicate, task.ID)
	}
	if err := s.checkUsers(task); err != nil {
		return err
	}

	rec := taskRecord{task: *task, seq: s.db.state.next()}
	rec.task.AssigneeID = copyID(task.AssigneeID)
	s.db.state.tasks[task.ID] = rec
	return nil
}

func (s *taskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	rec, ok := s.db.state.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return s.view(rec), nil
}

func (s *taskStore) Update(ctx context.Context, task *domain.Task) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if err := task.Validate(); err != nil {
		return err
	}
	rec, ok := s.db.state.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	if err := s.checkUsers(task); err != nil {
		return err
	}

	// Author and creation time are immutable.
	updated := *task
	updated.AssigneeID = copyID(task.AssigneeID)
	updated.AuthorID = rec.task.AuthorID
	updated.CreatedAt = rec.task.CreatedAt
	rec.task = updated
	s.db.state.tasks[task.ID] = rec
	return nil
}

func (s *taskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if _, ok := s.db.state.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.db.state.tasks, id)
	for cid, c := range s.db.state.comments {
		if c.comment.TaskID == id {
			delete(s.db.state.comments, cid)
		}
	}
	return nil
}

func (s *taskStore) List(ctx context.Context, page store.Page) ([]*domain.Task, error) {
	return s.list(page, func(*domain.Task) bool { return true }), nil
}

func (s *taskStore) ListByAuthorOrAssignee(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.Task, error) {
	return s.list(page, func(t *domain.Task) bool {
		return t.IsAuthor(userID) || t.IsAssignee(userID)
	}), nil
}

func (s *taskStore) list(page store.Page, keep func(*domain.Task) bool) []*domain.Task {
	if page.Empty() {
		return []*domain.Task{}
	}

	recs := make([]taskRecord, 0, len(s.db.state.tasks))
	for _, rec := range s.db.state.tasks {
		if keep(&rec.task) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	recs = store.Slice(recs, page)
	tasks := make([]*domain.Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, s.view(rec))
	}
	return tasks
}
