package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/phrazzld/taskboard-api/internal/policy"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserService_NilDependencies(t *testing.T) {
	_, err := service.NewUserService(nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.CacheConfig{})

	user, err := f.users.Register(ctx, "new@x.com", "password123", "New", "User")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEmpty(t, user.HashedPassword)
	assert.NotEqual(t, "password123", user.HashedPassword)
	assert.Empty(t, user.Password)

	_, err = f.users.Register(ctx, "new@x.com", "password123", "Again", "User")
	assert.ErrorIs(t, err, store.ErrEmailExists)

	_, err = f.users.Register(ctx, "not-an-email", "password123", "Bad", "User")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.users.Register(ctx, "short@x.com", "short", "Bad", "User")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.CacheConfig{})

	user, err := f.users.Authenticate(ctx, "a@x.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, user.ID)

	_, err = f.users.Authenticate(ctx, "a@x.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = f.users.Authenticate(ctx, "nobody@x.com", "password123")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = f.users.Authenticate(ctx, "A@x.com", "password123")
	assert.ErrorIs(t, err, store.ErrUserNotFound, "email lookup is case-sensitive")
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.CacheConfig{})

	user, err := f.users.GetUser(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", user.Email)

	_, err = f.users.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.CacheConfig{})

	users, err := f.users.ListUsers(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	_, err = f.users.ListUsers(ctx, f.alice)
	assert.ErrorIs(t, err, policy.ErrAccessDenied)
}

func TestUserService_PromoteToAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.CacheConfig{})
	assert.True(t, f.admin.IsAdmin())

	promoted, err := f.users.PromoteToAdmin(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	again, err := f.users.PromoteToAdmin(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, again.IsAdmin())

	_, err = f.users.PromoteToAdmin(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_AuthenticateVerifierFailure(t *testing.T) {
	ctx := context.Background()
	uow := memory.New(auth.NewBcrypt(4), nil)
	boom := errors.New("corrupt hash")
	verifier := &mocks.MockPasswordVerifier{
		CompareFn: func(string, string) error { return boom },
	}

	users, err := service.NewUserService(uow, verifier, nil)
	require.NoError(t, err)
	_, err = users.Register(ctx, "a@x.com", "password123", "Alice", "Tester")
	require.NoError(t, err)

	_, err = users.Authenticate(ctx, "a@x.com", "password123")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, service.ErrInvalidCredentials)

	var serviceErr *service.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "authenticate", serviceErr.Operation)
	assert.Equal(t, 1, verifier.CompareCallCount)
}
