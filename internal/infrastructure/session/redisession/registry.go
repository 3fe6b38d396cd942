// Package redisession provides a Redis-backed SessionRegistry. The key TTL
// is the sliding inactivity window: Resolve refreshes it with GETEX, so
// expiry is enforced by Redis itself and sessions survive server restarts.
package redisession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adsignage/billboard-server/internal/core/domain"
)

const keyPrefix = "session:"

const defaultTimeout = 5 * time.Second

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Registry stores sessions as JSON values under session:<token>.
type Registry struct {
	client  *redis.Client
	timeout time.Duration
}

func NewRegistry(client *redis.Client, timeout time.Duration) *Registry {
	return &Registry{client: client, timeout: timeout}
}

func (r *Registry) Put(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+session.Token, raw, r.timeout).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Resolve fetches the session and refreshes the key TTL in one round trip.
// The LastSeen field in the returned copy reflects this access; the stored
// value is left alone because the TTL already encodes the window.
func (r *Registry) Resolve(ctx context.Context, token string) (domain.Session, error) {
	raw, err := r.client.GetEx(ctx, keyPrefix+token, r.timeout).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("fetch session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	session.LastSeen = time.Now().UTC()
	return session, nil
}

func (r *Registry) Remove(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
