package positionstore

import (
	"context"
	"sync"
	"time"

	"github.com/yatralink/bustrack/internal/pkg/models"
)

type memoryEntry struct {
	fields    map[string]string
	expiresAt time.Time
}

// MemoryStore is an in-process Store for single-node deployments and tests.
// It follows the same merge, ordering and expiry rules as RedisStore.
type MemoryStore struct {
	opts Options
	now  func() time.Time

	mu          sync.Mutex
	entries     map[string]*memoryEntry
	subscribers map[*memorySubscription]struct{}
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{
		opts:        opts,
		now:         time.Now,
		entries:     make(map[string]*memoryEntry),
		subscribers: make(map[*memorySubscription]struct{}),
	}
}

// Upsert merges fields into the entry for key
func (s *MemoryStore) Upsert(ctx context.Context, key string, fields map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if ok && s.expired(entry, now) {
		delete(s.entries, key)
		ok = false
	}
	if !ok {
		entry = &memoryEntry{fields: make(map[string]string, len(fields))}
		s.entries[key] = entry
	}

	if incoming, has := timestampOf(fields); has {
		if current, hasCurrent := timestampOf(entry.fields); hasCurrent && current > incoming {
			return nil
		}
	}

	for field, value := range fields {
		entry.fields[field] = value
	}
	if s.opts.PositionTTL > 0 {
		entry.expiresAt = now.Add(s.opts.PositionTTL)
	}

	s.notifyLocked(now)
	return nil
}

// Delete removes the entry for key
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	s.notifyLocked(s.now())
	return nil
}

// Load returns a copy of every live entry ordered by key
func (s *MemoryStore) Load(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.now()), nil
}

// Subscribe registers a subscription that receives the current set
// immediately and again after every change
func (s *MemoryStore) Subscribe(ctx context.Context) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sub := &memorySubscription{
		store:   s,
		updates: make(chan []Document, 1),
		closed:  make(chan struct{}),
	}

	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	offer(sub.updates, s.snapshotLocked(s.now()))
	s.mu.Unlock()

	if s.opts.ResyncInterval > 0 {
		go sub.resync(s.opts.ResyncInterval)
	}
	return sub, nil
}

func (s *MemoryStore) expired(entry *memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

func (s *MemoryStore) snapshotLocked(now time.Time) []Document {
	docs := make([]Document, 0, len(s.entries))
	for key, entry := range s.entries {
		if s.expired(entry, now) {
			delete(s.entries, key)
			continue
		}
		fields := make(map[string]string, len(entry.fields))
		for k, v := range entry.fields {
			fields[k] = v
		}
		docs = append(docs, Document{Key: key, Fields: fields})
	}
	sortDocuments(docs)
	return docs
}

func (s *MemoryStore) notifyLocked(now time.Time) {
	if len(s.subscribers) == 0 {
		return
	}
	docs := s.snapshotLocked(now)
	for sub := range s.subscribers {
		offer(sub.updates, docs)
	}
}

type memorySubscription struct {
	store     *MemoryStore
	updates   chan []Document
	closed    chan struct{}
	closeOnce sync.Once
}

// resync republishes the current set so that expired entries disappear
// even when nothing else changes
func (sub *memorySubscription) resync(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-sub.closed:
			return
		case <-ticker.C:
			sub.store.mu.Lock()
			if _, ok := sub.store.subscribers[sub]; ok {
				offer(sub.updates, sub.store.snapshotLocked(sub.store.now()))
			}
			sub.store.mu.Unlock()
		}
	}
}

func (sub *memorySubscription) Next(ctx context.Context) ([]Document, error) {
	select {
	case <-sub.closed:
		return nil, models.ErrSubscriptionClosed
	default:
	}

	select {
	case docs := <-sub.updates:
		return docs, nil
	case <-sub.closed:
		return nil, models.ErrSubscriptionClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (sub *memorySubscription) Close() error {
	sub.closeOnce.Do(func() {
		sub.store.mu.Lock()
		delete(sub.store.subscribers, sub)
		sub.store.mu.Unlock()
		close(sub.closed)
	})
	return nil
}
