// Package mongostore provides a MongoDB-backed EntityStore. Identifiers are
// allocated from a counters collection so they stay small integers; the
// type's unique key, when configured, is enforced by a unique index so the
// check and the write happen atomically server-side.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/metrics"
)

const countersCollection = "counters"

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping,
// and returns both the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Store is a generic Mongo-backed EntityStore for one entity type.
type Store[T ports.Record[T]] struct {
	name     string
	coll     *mongo.Collection
	counters *mongo.Collection
}

// New builds a store over the named collection. keyField, when non-empty,
// names the bson field carrying the type's unique key; a unique index is
// created for it alongside the identifier index.
func New[T ports.Record[T]](ctx context.Context, db *mongo.Database, name, keyField string) (*Store[T], error) {
	s := &Store[T]{
		name:     name,
		coll:     db.Collection(name),
		counters: db.Collection(countersCollection),
	}

	indexes := []mongo.IndexModel{{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}}
	if keyField != "" {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: keyField, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}
	if _, err := s.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("create indexes for %s: %w", name, err)
	}

	return s, nil
}

func (s *Store[T]) Get(ctx context.Context, match func(T) bool) ([]T, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues(s.name, "get", "error").Inc()
		return nil, fmt.Errorf("find %s: %w", s.name, err)
	}

	var all []T
	if err := cur.All(ctx, &all); err != nil {
		metrics.StoreOpsTotal.WithLabelValues(s.name, "get", "error").Inc()
		return nil, fmt.Errorf("decode %s: %w", s.name, err)
	}

	out := make([]T, 0, len(all))
	for _, rec := range all {
		if match(rec) {
			out = append(out, rec)
		}
	}
	metrics.StoreOpsTotal.WithLabelValues(s.name, "get", "ok").Inc()
	return out, nil
}

func (s *Store[T]) Insert(ctx context.Context, record T) (T, error) {
	var zero T

	id, err := s.nextID(ctx)
	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues(s.name, "insert", "error").Inc()
		return zero, err
	}

	stored := record.WithEntityID(id)
	if _, err := s.coll.InsertOne(ctx, stored); err != nil {
		metrics.StoreOpsTotal.WithLabelValues(s.name, "insert", "error").Inc()
		if mongo.IsDuplicateKeyError(err) {
			return zero, fmt.Errorf("%s: %w", s.name, domain.ErrConflict)
		}
		return zero, fmt.Errorf("insert %s: %w", s.name, err)
	}

	metrics.StoreOpsTotal.WithLabelValues(s.name, "insert", "ok").Inc()
	return stored, nil
}

func (s *Store[T]) Update(ctx context.Context, record T) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"id": record.EntityID()}, record)
	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues(s.name, "update", "error").Inc()
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", s.name, domain.ErrConflict)
		}
		return fmt.Errorf("update %s: %w", s.name, err)
	}
	if res.MatchedCount == 0 {
		metrics.StoreOpsTotal.WithLabelValues(s.name, "update", "error").Inc()
		return fmt.Errorf("%s id %d: %w", s.name, record.EntityID(), domain.ErrNotFound)
	}

	metrics.StoreOpsTotal.WithLabelValues(s.name, "update", "ok").Inc()
	return nil
}

func (s *Store[T]) Delete(ctx context.Context, record T) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": record.EntityID()})
	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues(s.name, "delete", "error").Inc()
		return fmt.Errorf("delete %s: %w", s.name, err)
	}
	if res.DeletedCount == 0 {
		metrics.StoreOpsTotal.WithLabelValues(s.name, "delete", "error").Inc()
		return fmt.Errorf("%s id %d: %w", s.name, record.EntityID(), domain.ErrNotFound)
	}

	metrics.StoreOpsTotal.WithLabelValues(s.name, "delete", "ok").Inc()
	return nil
}

// nextID atomically increments this store's counter document and returns the
// new value.
func (s *Store[T]) nextID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": s.name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", s.name, err)
	}
	return counter.Seq, nil
}
