package service

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/pkg/clock"
)

// AuthService implements login, token resolution, and logout over the user
// and permission stores plus the session registry.
type AuthService struct {
	users       ports.EntityStore[domain.User]
	permissions ports.EntityStore[domain.PermissionSet]
	sessions    ports.SessionRegistry
	hasher      ports.PasswordHasher
	clock       clock.Clock
	log         zerolog.Logger
}

func NewAuthService(
	users ports.EntityStore[domain.User],
	permissions ports.EntityStore[domain.PermissionSet],
	sessions ports.SessionRegistry,
	hasher ports.PasswordHasher,
	clk clock.Clock,
	log zerolog.Logger,
) *AuthService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &AuthService{
		users:       users,
		permissions: permissions,
		sessions:    sessions,
		hasher:      hasher,
		clock:       clk,
		log:         log,
	}
}

// Login verifies the credentials and issues a session. Unknown user, missing
// permission record, and wrong password all collapse into
// domain.ErrInvalidCredentials so usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if username == "" || password == "" {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	users, err := s.users.Get(ctx, func(u domain.User) bool { return u.Username == username })
	if err != nil {
		return domain.Session{}, fmt.Errorf("look up user: %w", err)
	}
	if len(users) == 0 {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	user := users[0]

	perms, err := s.permissions.Get(ctx, func(p domain.PermissionSet) bool { return p.Username == username })
	if err != nil {
		return domain.Session{}, fmt.Errorf("look up permissions: %w", err)
	}
	if len(perms) == 0 {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	if !s.verify(user, password) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return domain.Session{}, err
	}

	now := s.clock.Now()
	session := domain.Session{
		Token:       token,
		Username:    user.Username,
		Permissions: perms[0],
		IssuedAt:    now,
		LastSeen:    now,
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}

	s.log.Info().Str("username", username).Msg("user logged in")
	return session, nil
}

// Resolve looks the token up in the registry; the registry applies and
// refreshes the sliding inactivity window.
func (s *AuthService) Resolve(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	return s.sessions.Resolve(ctx, token)
}

// Logout invalidates the token. Missing tokens are a no-op success so a
// client retrying a logout is never penalised.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Remove(ctx, token)
}

// verify recomputes the digest from the supplied password and the stored
// salt and compares in constant time.
func (s *AuthService) verify(user domain.User, password string) bool {
	salt, err := hex.DecodeString(user.Salt)
	if err != nil {
		s.log.Warn().Str("username", user.Username).Msg("stored salt is not valid hex")
		return false
	}
	stored, err := hex.DecodeString(user.Password)
	if err != nil {
		s.log.Warn().Str("username", user.Username).Msg("stored digest is not valid hex")
		return false
	}
	digest := s.hasher.Hash(password, salt)
	return subtle.ConstantTimeCompare(digest, stored) == 1
}
