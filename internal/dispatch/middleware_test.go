package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
)

// stubAuth resolves exactly one known token.
type stubAuth struct {
	token   string
	session domain.Session
	err     error
}

func (s *stubAuth) Login(context.Context, string, string) (domain.Session, error) {
	return domain.Session{}, domain.ErrInvalidCredentials
}

func (s *stubAuth) Resolve(_ context.Context, token string) (domain.Session, error) {
	if s.err != nil {
		return domain.Session{}, s.err
	}
	if token == s.token {
		return s.session, nil
	}
	return domain.Session{}, domain.ErrUnauthenticated
}

func (s *stubAuth) Logout(context.Context, string) error { return nil }

func authedRequest(token string, requiresAuth bool) *Request {
	return &Request{
		Token: token,
		Route: &Route{RequiresAuth: requiresAuth},
	}
}

func passThrough(req **Request) Handler {
	return func(_ context.Context, r *Request) Result {
		*req = r
		return Ok()
	}
}

func TestAuth_AttachesSession(t *testing.T) {
	auth := &stubAuth{token: "tok", session: domain.Session{Token: "tok", Username: "alice"}}

	var seen *Request
	h := Auth(auth, zerolog.Nop())(passThrough(&seen))

	res := h(context.Background(), authedRequest("tok", true))
	if res.Status != StatusOK {
		t.Fatalf("expected ok, got %+v", res)
	}
	if seen.Session == nil || seen.Session.Username != "alice" {
		t.Fatalf("session not attached: %+v", seen.Session)
	}
}

func TestAuth_RejectsProtectedRouteWithoutToken(t *testing.T) {
	auth := &stubAuth{token: "tok"}

	h := Auth(auth, zerolog.Nop())(func(context.Context, *Request) Result {
		t.Fatalf("should not reach action")
		return Ok()
	})

	res := h(context.Background(), authedRequest("", true))
	if res.Status != StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %+v", res)
	}
}

func TestAuth_RejectsProtectedRouteWithBadToken(t *testing.T) {
	auth := &stubAuth{token: "tok"}

	h := Auth(auth, zerolog.Nop())(func(context.Context, *Request) Result {
		t.Fatalf("should not reach action")
		return Ok()
	})

	res := h(context.Background(), authedRequest("wrong", true))
	if res.Status != StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %+v", res)
	}
}

func TestAuth_PublicRouteProceedsAnonymously(t *testing.T) {
	auth := &stubAuth{token: "tok"}

	var seen *Request
	h := Auth(auth, zerolog.Nop())(passThrough(&seen))

	res := h(context.Background(), authedRequest("wrong", false))
	if res.Status != StatusOK {
		t.Fatalf("expected ok, got %+v", res)
	}
	if seen.Session != nil {
		t.Fatalf("expected anonymous request, got session %+v", seen.Session)
	}
}

func TestAuth_RegistryFailureIsServerError(t *testing.T) {
	auth := &stubAuth{err: errors.New("registry down")}

	h := Auth(auth, zerolog.Nop())(func(context.Context, *Request) Result {
		t.Fatalf("should not reach action")
		return Ok()
	})

	res := h(context.Background(), authedRequest("tok", true))
	if res.Status != StatusServerError {
		t.Fatalf("expected server_error, got %+v", res)
	}
}
