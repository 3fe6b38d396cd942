// Package memory provides the in-memory EntityStore backing: a slice in
// insertion order guarded by a read-write lock. It is the default backend and
// the reference implementation of the store contract.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/metrics"
)

// Store is a generic in-memory EntityStore. Reads may run concurrently;
// writes are exclusive, and the uniqueness check happens under the same lock
// as the write so check-then-insert cannot race.
type Store[T ports.Record[T]] struct {
	name string

	mu      sync.RWMutex
	nextID  int
	records []T

	// keyOf extracts the unique key, nil when the type has none.
	keyOf func(T) string
}

// Option configures a Store at construction time.
type Option[T ports.Record[T]] func(*Store[T])

// WithUniqueKey declares a unique key for the stored type. Insert and Update
// reject records whose key is already held by a different identifier.
func WithUniqueKey[T ports.Record[T]](keyOf func(T) string) Option[T] {
	return func(s *Store[T]) { s.keyOf = keyOf }
}

// NewStore builds an empty store. name labels metrics and error messages.
func NewStore[T ports.Record[T]](name string, opts ...Option[T]) *Store[T] {
	s := &Store[T]{name: name}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store[T]) Get(_ context.Context, match func(T) bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, rec := range s.records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	metrics.StoreOpsTotal.WithLabelValues(s.name, "get", "ok").Inc()
	return out, nil
}

func (s *Store[T]) Insert(_ context.Context, record T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.keyOf != nil {
		key := s.keyOf(record)
		for _, existing := range s.records {
			if s.keyOf(existing) == key {
				metrics.StoreOpsTotal.WithLabelValues(s.name, "insert", "error").Inc()
				var zero T
				return zero, fmt.Errorf("%s %q: %w", s.name, key, domain.ErrConflict)
			}
		}
	}

	s.nextID++
	stored := record.WithEntityID(s.nextID)
	s.records = append(s.records, stored)
	metrics.StoreOpsTotal.WithLabelValues(s.name, "insert", "ok").Inc()
	return stored, nil
}

func (s *Store[T]) Update(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(record.EntityID())
	if idx < 0 {
		metrics.StoreOpsTotal.WithLabelValues(s.name, "update", "error").Inc()
		return fmt.Errorf("%s id %d: %w", s.name, record.EntityID(), domain.ErrNotFound)
	}

	if s.keyOf != nil {
		key := s.keyOf(record)
		for _, existing := range s.records {
			if existing.EntityID() != record.EntityID() && s.keyOf(existing) == key {
				metrics.StoreOpsTotal.WithLabelValues(s.name, "update", "error").Inc()
				return fmt.Errorf("%s %q: %w", s.name, key, domain.ErrConflict)
			}
		}
	}

	s.records[idx] = record
	metrics.StoreOpsTotal.WithLabelValues(s.name, "update", "ok").Inc()
	return nil
}

func (s *Store[T]) Delete(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(record.EntityID())
	if idx < 0 {
		metrics.StoreOpsTotal.WithLabelValues(s.name, "delete", "error").Inc()
		return fmt.Errorf("%s id %d: %w", s.name, record.EntityID(), domain.ErrNotFound)
	}

	s.records = append(s.records[:idx], s.records[idx+1:]...)
	metrics.StoreOpsTotal.WithLabelValues(s.name, "delete", "ok").Inc()
	return nil
}

// indexOf must be called with the lock held.
func (s *Store[T]) indexOf(id int) int {
	for i, rec := range s.records {
		if rec.EntityID() == id {
			return i
		}
	}
	return -1
}
