package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Password length bounds. 72 bytes is the most bcrypt will consider.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User validation errors
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidRole      = errors.New("invalid role")
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseRole converts a role name, in any case, to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", NewValidationError("role", fmt.Sprintf("must be one of %s, %s", RoleAdmin, RoleUser), ErrInvalidRole)
	}
	return r, nil
}

// User is a registered account.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // plaintext, only present until the store hashes it
	HashedPassword string    `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a USER-role account from registration data.
// The plaintext password must be hashed before the user is persisted.
func NewUser(email, password, firstName, lastName string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     strings.TrimSpace(email),
		Password:  password,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the user's fields. A user must carry either a plaintext
// password within the length bounds or an existing hash.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyUserID)
	}

	if u.Email == "" {
		return NewValidationError("email", "cannot be empty", ErrEmptyEmail)
	}
	if !validateEmailFormat(u.Email) {
		return NewValidationError("email", "is not a valid email address", ErrInvalidEmail)
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return NewValidationError("password",
				fmt.Sprintf("must be at least %d characters", MinPasswordLength), ErrPasswordTooShort)
		}
		if len(u.Password) > MaxPasswordLength {
			return NewValidationError("password",
				fmt.Sprintf("must be at most %d characters", MaxPasswordLength), ErrPasswordTooLong)
		}
	} else if u.HashedPassword == "" {
		return NewValidationError("password", "cannot be empty", ErrEmptyPassword)
	}

	if strings.TrimSpace(u.FirstName) == "" {
		return NewValidationError("first_name", "cannot be empty", ErrEmptyName)
	}
	if strings.TrimSpace(u.LastName) == "" {
		return NewValidationError("last_name", "cannot be empty", ErrEmptyName)
	}

	if !u.Role.Valid() {
		return NewValidationError("role", "is not a known role", ErrInvalidRole)
	}

	return nil
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// validateEmailFormat requires a non-empty local part, a single @, and a
// dotted domain without leading or trailing dots.
func validateEmailFormat(email string) bool {
	local, domainPart, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domainPart, "@") {
		return false
	}
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	dot := strings.Index(domainPart, ".")
	return dot > 0 && !strings.HasSuffix(domainPart, ".")
}
