package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/policy"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// UserService provides registration, authentication and user lookups.
type UserService interface {
	// Register creates a USER-role account.
	// Returns store.ErrEmailExists if the email is taken.
	Register(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error)

	// Authenticate checks an email and password pair. Returns
	// store.ErrUserNotFound for an unknown email and ErrInvalidCredentials
	// for a wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ListUsers returns every user. Admin only.
	ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error)

	// PromoteToAdmin grants the ADMIN role to the account with email.
	PromoteToAdmin(ctx context.Context, email string) (*domain.User, error)
}

type userService struct {
	uow      store.UnitOfWork
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	uow store.UnitOfWork,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if uow == nil {
		return nil, domain.NewValidationError("uow", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userService{
		uow:      uow,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userService) Register(
	ctx context.Context,
	email, password, firstName, lastName string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password, firstName, lastName)
	if err != nil {
		log.Debug("registration rejected", slog.String("error", err.Error()))
		return nil, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context, tx store.Stores) error {
		return tx.Users.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration with existing email")
		} else {
			log.Error("failed to save user", slog.String("error", redact.Error(err)))
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user *domain.User
	err := s.uow.View(ctx, func(ctx context.Context, tx store.Stores) error {
		var err error
		user, err = tx.Users.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to load user for login", slog.String("error", redact.Error(err)))
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("password mismatch", slog.String("user_id", user.ID.String()))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.String("error", err.Error()))
		return nil, NewServiceError("user", "authenticate", err)
	}

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user *domain.User
	err := s.uow.View(ctx, func(ctx context.Context, tx store.Stores) error {
		var err error
		user, err = tx.Users.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if err := policy.CanListUsers(actor); err != nil {
		return nil, err
	}

	var users []*domain.User
	err := s.uow.View(ctx, func(ctx context.Context, tx store.Stores) error {
		var err error
		users, err = tx.Users.List(ctx)
		return err
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) PromoteToAdmin(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := s.uow.Do(ctx, func(ctx context.Context, tx store.Stores) error {
		var err error
		user, err = tx.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user.IsAdmin() {
			return nil
		}
		if err := tx.Users.UpdateRole(ctx, user.ID, domain.RoleAdmin); err != nil {
			return err
		}
		user.Role = domain.RoleAdmin
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).
		Info("user promoted to admin", slog.String("user_id", user.ID.String()))
	return user, nil
}
