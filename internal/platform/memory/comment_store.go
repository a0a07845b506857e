package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

type commentStore struct {
	db       *DB
	readOnly bool
}

var _ store.CommentStore = (*commentStore)(nil)

func (s *commentStore) view(rec commentRecord) *domain.Comment {
	c := rec.comment
	if author, ok := s.db.state.users[c.AuthorID]; ok {
		c.AuthorEmail = author.Email
	}
	return &c
}

func (s *commentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if err := comment.Validate(); err != nil {
		return err
	}
	st := s.db.state
	if _, ok := st.comments[comment.ID]; ok {
		return fmt.Errorf("%w: comment %s", store.ErrDuplicate, comment.ID)
	}
	if _, ok := st.tasks[comment.TaskID]; !ok {
		return fmt.Errorf("%w: task %s does not exist", store.ErrInvalidEntity, comment.TaskID)
	}
	if _, ok := st.users[comment.AuthorID]; !ok {
		return fmt.Errorf("%w: author %s does not exist", store.ErrInvalidEntity, comment.AuthorID)
	}

	st.comments[comment.ID] = commentRecord{comment: *comment, seq: st.next()}
	return nil
}

func (s *commentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	rec, ok := s.db.state.comments[id]
	if !ok {
		return nil, store.ErrCommentNotFound
	}
	return s.view(rec), nil
}

func (s *commentStore) Delete(ctx context.Context, id uuid.UUID) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if _, ok := s.db.state.comments[id]; !ok {
		return store.ErrCommentNotFound
	}
	delete(s.db.state.comments, id)
	return nil
}

func (s *commentStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error) {
	recs := make([]commentRecord, 0)
	for _, rec := range s.db.state.comments {
		if rec.comment.TaskID == taskID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.comment.CreatedAt.Equal(b.comment.CreatedAt) {
			return a.comment.CreatedAt.Before(b.comment.CreatedAt)
		}
		return a.seq < b.seq
	})

	comments := make([]*domain.Comment, 0, len(recs))
	for _, rec := range recs {
		comments = append(comments, s.view(rec))
	}
	return comments, nil
}
