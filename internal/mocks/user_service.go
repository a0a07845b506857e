package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserService is a mock of service.UserService for use with testify/mock
type TestifyMockUserService struct {
	mock.Mock
}

var _ service.UserService = (*TestifyMockUserService)(nil)

func userResult(args mock.Arguments) (*domain.User, error) {
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Register is a mock implementation of service.UserService.Register
func (m *TestifyMockUserService) Register(
	ctx context.Context,
	email, password, firstName, lastName string,
) (*domain.User, error) {
	return userResult(m.Called(ctx, email, password, firstName, lastName))
}

// Authenticate is a mock implementation of service.UserService.Authenticate
func (m *TestifyMockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return userResult(m.Called(ctx, email, password))
}

// GetUser is a mock implementation of service.UserService.GetUser
func (m *TestifyMockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return userResult(m.Called(ctx, userID))
}

// ListUsers is a mock implementation of service.UserService.ListUsers
func (m *TestifyMockUserService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	args := m.Called(ctx, actor)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// PromoteToAdmin is a mock implementation of service.UserService.PromoteToAdmin
func (m *TestifyMockUserService) PromoteToAdmin(ctx context.Context, email string) (*domain.User, error) {
	return userResult(m.Called(ctx, email))
}
