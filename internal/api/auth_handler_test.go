package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(users service.UserService, jwtService *mocks.MockJWTService) http.Handler {
	h := NewAuthHandler(users, jwtService, nil)
	r := chi.NewRouter()
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	expiresAt := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	user := &domain.User{
		ID:        uuid.New(),
		Email:     "a@x.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      domain.RoleUser,
	}
	valid := RegisterRequest{Email: "a@x.com", Password: "password123", FirstName: "Ada", LastName: "Lovelace"}

	t.Run("success", func(t *testing.T) {
		users := &mocks.TestifyMockUserService{}
		users.On("Register", mock.Anything, "a@x.com", "password123", "Ada", "Lovelace").Return(user, nil)
		jwtService := &mocks.MockJWTService{Token: "signed", ExpiresAt: expiresAt}

		rr := doRequest(t, newAuthRouter(users, jwtService), http.MethodPost, "/api/auth/register", valid, nil)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := decodeBody[AuthResponse](t, rr)
		assert.Equal(t, "signed", resp.Token)
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, "a@x.com", resp.Email)
		assert.Equal(t, "Ada", resp.FirstName)
		assert.Equal(t, "Lovelace", resp.LastName)
		assert.Equal(t, "USER", resp.Role)
		assert.Equal(t, "2030-01-02T03:04:05Z", resp.ExpiresAt)
		users.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		users := &mocks.TestifyMockUserService{}
		users.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, store.ErrEmailExists)

		rr := doRequest(t, newAuthRouter(users, &mocks.MockJWTService{}),
			http.MethodPost, "/api/auth/register", valid, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Email already exists", decodeBody[shared.ErrorResponse](t, rr).Error)
	})

	t.Run("validation errors never reach the service", func(t *testing.T) {
		users := &mocks.TestifyMockUserService{}
		router := newAuthRouter(users, &mocks.MockJWTService{})

		bodies := []interface{}{
			RegisterRequest{Email: "bad", Password: "password123", FirstName: "A", LastName: "B"},
			RegisterRequest{Email: "a@x.com", Password: "short", FirstName: "A", LastName: "B"},
			RegisterRequest{Email: "a@x.com", Password: "password123", LastName: "B"},
			"{not json",
			"",
		}
		for _, body := range bodies {
			rr := doRequest(t, router, http.MethodPost, "/api/auth/register", body, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code, "%v", body)
		}
		assert.Empty(t, users.Calls)
	})

	t.Run("token failure", func(t *testing.T) {
		users := &mocks.TestifyMockUserService{}
		users.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(user, nil)
		jwtService := &mocks.MockJWTService{Err: errors.New("signing failed")}

		rr := doRequest(t, newAuthRouter(users, jwtService), http.MethodPost, "/api/auth/register", valid, nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "signing failed")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "a@x.com", FirstName: "Ada", LastName: "L", Role: domain.RoleAdmin}

	tests := []struct {
		name       string
		result     *domain.User
		err        error
		wantStatus int
	}{
		{"success", user, nil, http.StatusOK},
		{"unknown user", nil, store.ErrUserNotFound, http.StatusNotFound},
		{"wrong password", nil, service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unexpected", nil, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mocks.TestifyMockUserService{}
			users.On("Authenticate", mock.Anything, "a@x.com", "password123").Return(tt.result, tt.err)

			var issuedFor *domain.User
			jwtService := &mocks.MockJWTService{
				GenerateTokenFn: func(_ context.Context, u *domain.User) (string, time.Time, error) {
					issuedFor = u
					return "signed", time.Now().Add(time.Hour), nil
				},
			}

			rr := doRequest(t, newAuthRouter(users, jwtService), http.MethodPost, "/api/auth/login",
				LoginRequest{Email: "a@x.com", Password: "password123"}, nil)

			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus == http.StatusOK {
				resp := decodeBody[AuthResponse](t, rr)
				assert.Equal(t, "ADMIN", resp.Role)
				assert.Equal(t, user, issuedFor)
			} else {
				assert.Nil(t, issuedFor)
			}
			users.AssertExpectations(t)
		})
	}
}
