package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

type userStore struct {
	db       *DB
	readOnly bool
}

var _ store.UserStore = (*userStore)(nil)

func (s *userStore) Create(ctx context.Context, user *domain.User) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if err := user.Validate(); err != nil {
		return err
	}

	st := s.db.state
	if _, ok := st.emails[user.Email]; ok {
		return store.ErrEmailExists
	}
	if _, ok := st.users[user.ID]; ok {
		return fmt.Errorf("%w: user %s", store.ErrDuplicate, user.ID)
	}

	if user.Password != "" {
		hash, err := s.db.hasher.Hash(user.Password)
		if err != nil {
			return err
		}
		user.HashedPassword = hash
		user.Password = ""
	}

	st.users[user.ID] = *user
	st.emails[user.Email] = user.ID
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.db.state.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, ok := s.db.state.emails[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *userStore) List(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(s.db.state.users))
	for _, u := range s.db.state.users {
		user := u
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID.String() < users[j].ID.String()
	})
	return users, nil
}

func (s *userStore) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if !role.Valid() {
		return domain.NewValidationError("role", fmt.Sprintf("%q is not a known role", role), domain.ErrInvalidRole)
	}
	user, ok := s.db.state.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	s.db.state.users[id] = user
	return nil
}
