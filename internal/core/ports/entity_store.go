package ports

import "context"

// Record is any persisted domain entity with a store-assigned integer
// identifier. WithEntityID returns a copy so records keep value semantics.
type Record[T any] interface {
	EntityID() int
	WithEntityID(id int) T
}

// EntityStore is the generic persistence port. One store instance exists per
// entity type; implementations must be safe for concurrent use, with all four
// operations atomic with respect to other callers on the same store.
type EntityStore[T Record[T]] interface {
	// Get returns every record satisfying match, in insertion order. The
	// result is never nil-on-success; no match yields an empty slice.
	Get(ctx context.Context, match func(T) bool) ([]T, error)

	// Insert assigns a fresh identifier and persists the record, returning
	// the stored copy. The store's uniqueness constraint, if any, is checked
	// inside the same critical section as the write; a violation returns
	// domain.ErrConflict.
	Insert(ctx context.Context, record T) (T, error)

	// Update replaces the record whose identifier matches. Returns
	// domain.ErrNotFound if the identifier is absent, domain.ErrConflict if
	// another record already holds the same unique key.
	Update(ctx context.Context, record T) error

	// Delete removes the record matching the identifier. Returns
	// domain.ErrNotFound if absent; deleting twice fails the second time.
	Delete(ctx context.Context, record T) error
}
