package ports

import (
	"context"

	"github.com/adsignage/billboard-server/internal/core/domain"
)

// AuthService turns verified credentials into sessions and resolves tokens.
type AuthService interface {
	// Login verifies username/password and issues a session. Unknown user and
	// wrong password both return domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (domain.Session, error)

	// Resolve looks up a live session by token with sliding expiry.
	Resolve(ctx context.Context, token string) (domain.Session, error)

	// Logout invalidates the token; logging out twice succeeds both times.
	Logout(ctx context.Context, token string) error
}

// PasswordHasher is the opaque hashing collaborator: deterministic for a
// given plaintext and salt.
type PasswordHasher interface {
	Hash(plaintext string, salt []byte) []byte
}
