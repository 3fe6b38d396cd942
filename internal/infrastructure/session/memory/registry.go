// Package memory provides the in-memory SessionRegistry: a token-keyed map
// with sliding inactivity expiry checked lazily at resolve time, plus an
// optional background janitor that proactively evicts timed-out sessions.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/metrics"
	"github.com/adsignage/billboard-server/internal/pkg/clock"
)

// Registry tracks live sessions. The token map is the single shared mutable
// structure: lookups that refresh last-seen take the write lock, so all
// mutations serialize while Put/Remove/Resolve stay safe to call from many
// goroutines at once.
type Registry struct {
	timeout time.Duration
	clock   clock.Clock
	log     zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewRegistry(timeout time.Duration, clk clock.Clock, log zerolog.Logger) *Registry {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Registry{
		timeout:  timeout,
		clock:    clk,
		log:      log,
		sessions: make(map[string]domain.Session),
	}
}

func (r *Registry) Put(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.Token] = session
	metrics.SessionsActive.Set(float64(len(r.sessions)))
	return nil
}

// Resolve returns the session for token and slides its expiry window. An
// expired session is removed on the spot.
func (r *Registry) Resolve(_ context.Context, token string) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[token]
	if !ok {
		return domain.Session{}, domain.ErrUnauthenticated
	}

	now := r.clock.Now()
	if now.Sub(session.LastSeen) > r.timeout {
		delete(r.sessions, token)
		metrics.SessionsActive.Set(float64(len(r.sessions)))
		return domain.Session{}, domain.ErrUnauthenticated
	}

	session.LastSeen = now
	r.sessions[token] = session
	return session, nil
}

// Remove deletes the session; an absent token is a successful no-op.
func (r *Registry) Remove(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
	metrics.SessionsActive.Set(float64(len(r.sessions)))
	return nil
}

// StartJanitor launches a background loop evicting expired sessions every
// interval until ctx is cancelled. Expiry stays correct without it; the
// janitor only reclaims memory for sessions that are never resolved again.
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if evicted := r.evictExpired(); evicted > 0 {
					r.log.Info().Int("evicted", evicted).Msg("session janitor evicted expired sessions")
				}
			}
		}
	}()
}

func (r *Registry) evictExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	evicted := 0
	for token, session := range r.sessions {
		if now.Sub(session.LastSeen) > r.timeout {
			delete(r.sessions, token)
			evicted++
		}
	}
	if evicted > 0 {
		metrics.SessionsActive.Set(float64(len(r.sessions)))
		metrics.SessionsEvictedTotal.Add(float64(evicted))
	}
	return evicted
}
