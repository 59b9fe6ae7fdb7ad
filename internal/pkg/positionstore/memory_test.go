package positionstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatralink/bustrack/internal/pkg/constants"
	"github.com/yatralink/bustrack/internal/pkg/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore_UpsertMergeAndOrdering(t *testing.T) {
	store := NewMemoryStore(Options{})
	ctx := context.Background()

	first := samplePosition("bus-2", 1, 1, time.UnixMilli(1000))
	first.Owner = "driver@example.com"
	require.NoError(t, store.Upsert(ctx, "bus-2", EncodeFields(first)))
	require.NoError(t, store.Upsert(ctx, "bus-1", EncodeFields(samplePosition("bus-1", 3, 3, time.UnixMilli(1000)))))
	require.NoError(t, store.Upsert(ctx, "bus-2", EncodeFields(samplePosition("bus-2", 2, 2, time.UnixMilli(2000)))))

	docs, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "bus-1", docs[0].Key)
	assert.Equal(t, "bus-2", docs[1].Key)
	assert.Equal(t, "2", docs[1].Fields[constants.FieldLatitude])
	assert.Equal(t, "driver@example.com", docs[1].Fields[constants.FieldOwner])
}

func TestMemoryStore_IgnoresOlderSample(t *testing.T) {
	store := NewMemoryStore(Options{})
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "bus-1", EncodeFields(samplePosition("bus-1", 5, 5, time.UnixMilli(5000)))))
	require.NoError(t, store.Upsert(ctx, "bus-1", EncodeFields(samplePosition("bus-1", 4, 4, time.UnixMilli(4000)))))

	docs, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "5", docs[0].Fields[constants.FieldLatitude])
}

func TestMemoryStore_Idempotent(t *testing.T) {
	store := NewMemoryStore(Options{})
	ctx := context.Background()
	fields := EncodeFields(samplePosition("bus-1", 12.97, 77.59, time.UnixMilli(1000)))

	require.NoError(t, store.Upsert(ctx, "bus-1", fields))
	first, _ := store.Load(ctx)
	require.NoError(t, store.Upsert(ctx, "bus-1", fields))
	second, _ := store.Load(ctx)

	assert.Equal(t, first, second)
}

func TestMemoryStore_LoadReturnsCopies(t *testing.T) {
	store := NewMemoryStore(Options{})
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, "bus-1", EncodeFields(samplePosition("bus-1", 1, 1, time.UnixMilli(1)))))

	docs, _ := store.Load(ctx)
	docs[0].Fields[constants.FieldLatitude] = "99"

	again, _ := store.Load(ctx)
	assert.Equal(t, "1", again[0].Fields[constants.FieldLatitude])
}

func TestMemoryStore_TTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := NewMemoryStore(Options{PositionTTL: time.Minute})
	store.now = clock.Now
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "bus-1", EncodeFields(samplePosition("bus-1", 1, 1, time.UnixMilli(1)))))
	clock.Advance(30 * time.Second)
	docs, _ := store.Load(ctx)
	assert.Len(t, docs, 1)

	clock.Advance(31 * time.Second)
	docs, _ = store.Load(ctx)
	assert.Empty(t, docs)
}

func TestMemoryStore_Subscribe(t *testing.T) {
	store := NewMemoryStore(Options{})
	ctx := context.Background()

	sub, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	initial, err := sub.Next(ctx)
	require.NoError(t, err)
	assert.Empty(t, initial)

	require.NoError(t, store.Upsert(ctx, "bus-1", EncodeFields(samplePosition("bus-1", 1, 1, time.UnixMilli(1)))))
	docs := waitFor(t, sub, hasKey("bus-1"))
	assert.Len(t, docs, 1)

	require.NoError(t, store.Delete(ctx, "bus-1"))
	docs = waitFor(t, sub, func(docs []Document) bool { return len(docs) == 0 })
	assert.Empty(t, docs)
}

func TestMemoryStore_SubscribeCoalesces(t *testing.T) {
	store := NewMemoryStore(Options{})
	ctx := context.Background()

	sub, err := store.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	for i, id := range []string{"bus-1", "bus-2", "bus-3"} {
		require.NoError(t, store.Upsert(ctx, id, EncodeFields(samplePosition(id, 1, 1, time.UnixMilli(int64(i))))))
	}

	// only the latest set is pending
	docs, err := sub.Next(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestMemoryStore_SubscriptionClose(t *testing.T) {
	store := NewMemoryStore(Options{})
	sub, err := store.Subscribe(context.Background())
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	_, err = sub.Next(context.Background())
	assert.ErrorIs(t, err, models.ErrSubscriptionClosed)

	// closed subscriptions no longer receive sets
	require.NoError(t, store.Upsert(context.Background(), "bus-1", EncodeFields(samplePosition("bus-1", 1, 1, time.UnixMilli(1)))))
	store.mu.Lock()
	assert.Empty(t, store.subscribers)
	store.mu.Unlock()
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	store := NewMemoryStore(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Upsert(ctx, "bus-1", map[string]string{}), context.Canceled)
	assert.ErrorIs(t, store.Delete(ctx, "bus-1"), context.Canceled)
	_, err := store.Subscribe(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       models.StoreConfig
		expectErr bool
	}{
		{name: "memory", cfg: models.StoreConfig{Driver: "memory"}},
		{name: "redis without client", cfg: models.StoreConfig{Driver: "redis"}, expectErr: true},
		{name: "unknown", cfg: models.StoreConfig{Driver: "etcd"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := New(tt.cfg, nil, 0)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, store)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, store)
			}
		})
	}
}
