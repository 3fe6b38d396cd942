package ports

import (
	"context"

	"github.com/adsignage/billboard-server/internal/core/domain"
)

// SessionRegistry tracks live sessions keyed by token. Implementations own
// expiry: Resolve applies the sliding inactivity window and refreshes it.
type SessionRegistry interface {
	// Put stores a freshly issued session under its token.
	Put(ctx context.Context, session domain.Session) error

	// Resolve returns the session for token, refreshing its last-seen time.
	// An unknown or expired token returns domain.ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (domain.Session, error)

	// Remove invalidates the token. Removing an absent token is a no-op,
	// never an error.
	Remove(ctx context.Context, token string) error
}
