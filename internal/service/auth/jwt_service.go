package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// JWTService issues and validates signed authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token for user and reports when it expires.
	GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateToken checks the token's signature and expiry and returns its
	// claims. It fails with ErrExpiredToken once the expiry has passed and
	// with ErrInvalidToken for every other problem.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token.
type Claims struct {
	// UserID is parsed from the subject.
	UserID    uuid.UUID
	Email     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
	// KeyID names the key that signed the token.
	KeyID string
}
