package domain

import "errors"

var (
	// ErrNotFound is returned by a store when no record matches the identifier.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned by a store when a write would violate a
	// uniqueness constraint (duplicate billboard name, duplicate username).
	ErrConflict = errors.New("unique key already exists")

	// ErrInvalidCredentials covers both unknown-user and wrong-password so the
	// two cases stay indistinguishable to callers.
	ErrInvalidCredentials = errors.New("incorrect details")

	// ErrUnauthenticated is returned when a token is missing, unknown, or has
	// passed its inactivity window.
	ErrUnauthenticated = errors.New("invalid or expired token")
)
