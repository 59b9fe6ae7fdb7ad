// Package positionstore holds the live vehicle position documents shared by
// the tracking and rider services. Each vehicle has at most one document,
// written only by its own tracking session.
package positionstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yatralink/bustrack/internal/pkg/database"
	"github.com/yatralink/bustrack/internal/pkg/models"
)

// Document is one stored entry: the vehicle id and its raw fields
type Document struct {
	Key    string
	Fields map[string]string
}

// Store is a shared key-value store of vehicle positions
type Store interface {
	// Upsert merges fields into the document for key, creating it if needed.
	Upsert(ctx context.Context, key string, fields map[string]string) error
	// Delete removes the document for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Subscribe opens a change stream delivering the complete current set.
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription delivers full document sets. The first call to Next returns
// the set as of subscription time; later calls return the set after one or
// more changes, collapsed to the latest.
type Subscription interface {
	Next(ctx context.Context) ([]Document, error)
	Close() error
}

// Options tunes a store implementation
type Options struct {
	// PositionTTL expires documents that stop receiving upserts. Zero disables expiry.
	PositionTTL time.Duration
	// ResyncInterval reloads the full set periodically even without notifications.
	ResyncInterval time.Duration
}

// New builds the store selected by cfg.Driver
func New(cfg models.StoreConfig, redisClient *database.RedisClient, resync time.Duration) (Store, error) {
	opts := Options{PositionTTL: cfg.PositionTTL, ResyncInterval: resync}

	switch cfg.Driver {
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis position store requires a redis client")
		}
		return NewRedisStore(redisClient, opts), nil
	case "memory":
		return NewMemoryStore(opts), nil
	default:
		return nil, fmt.Errorf("unknown position store driver %q", cfg.Driver)
	}
}

func sortDocuments(docs []Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].Key < docs[j].Key })
}

// offer replaces any undelivered set with docs. Only the owning loop sends on ch.
func offer(ch chan []Document, docs []Document) {
	select {
	case <-ch:
	default:
	}
	ch <- docs
}
