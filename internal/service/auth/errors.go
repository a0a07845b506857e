package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, its signature does not
	// match, or it was signed with an unknown key.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token's expiry has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was required but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)
