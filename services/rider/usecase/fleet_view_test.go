package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatralink/bustrack/internal/pkg/constants"
	"github.com/yatralink/bustrack/internal/pkg/database"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/pkg/positionstore"
	"github.com/yatralink/bustrack/internal/pkg/retry"
)

func fastRetrier() *retry.Retrier {
	return retry.New(retry.Config{BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}, nil)
}

func startView(t *testing.T, feed interface {
	Subscribe(ctx context.Context) (positionstore.Subscription, error)
}, cfg models.FleetConfig) *FleetView {
	t.Helper()
	v := NewFleetView(feed, cfg)
	v.retrier = fastRetrier()
	v.Start(context.Background())
	t.Cleanup(v.Close)
	return v
}

func waitForFleet(t *testing.T, v *FleetView, match func(*models.FleetSnapshot) bool) *models.FleetSnapshot {
	t.Helper()
	var snapshot *models.FleetSnapshot
	require.Eventually(t, func() bool {
		snapshot = v.Current()
		return match(snapshot)
	}, 2*time.Second, 5*time.Millisecond)
	return snapshot
}

func upsert(t *testing.T, store positionstore.Store, pos models.VehiclePosition) {
	t.Helper()
	require.NoError(t, store.Upsert(context.Background(), pos.VehicleID, positionstore.EncodeFields(pos)))
}

func position(id string, lat, lng float64) models.VehiclePosition {
	return models.VehiclePosition{
		VehicleID: id,
		Latitude:  lat,
		Longitude: lng,
		Status:    models.VehicleOnTrip,
		UpdatedAt: models.Now(),
		Owner:     id + "@example.com",
	}
}

func TestFleetView_InitialSnapshotIsEmpty(t *testing.T) {
	v := NewFleetView(positionstore.NewMemoryStore(positionstore.Options{}), models.FleetConfig{})

	require.NotNil(t, v.Current())
	assert.Equal(t, 0, v.Current().Len())
	assert.NotPanics(t, v.Close)
}

func TestFleetView_FollowsStore(t *testing.T) {
	store := positionstore.NewMemoryStore(positionstore.Options{})
	upsert(t, store, position("bus-2", 12.93, 77.62))

	v := startView(t, store, models.FleetConfig{})
	waitForFleet(t, v, func(s *models.FleetSnapshot) bool { return s.Len() == 1 })

	updated := v.Updated()
	upsert(t, store, position("bus-1", 12.97, 77.59))

	select {
	case <-updated:
	case <-time.After(2 * time.Second):
		t.Fatal("Updated channel was not closed")
	}

	snapshot := waitForFleet(t, v, func(s *models.FleetSnapshot) bool { return s.Len() == 2 })
	assert.Equal(t, "bus-1", snapshot.Vehicles[0].VehicleID, "vehicles are ordered by id")
	assert.Equal(t, "bus-2", snapshot.Vehicles[1].VehicleID)
	assert.Equal(t, "bus-1@example.com", snapshot.Vehicles[0].Owner)
}

func TestFleetView_StopRemovesVehicle(t *testing.T) {
	store := positionstore.NewMemoryStore(positionstore.Options{})
	upsert(t, store, position("bus-1", 12.97, 77.59))
	upsert(t, store, position("bus-2", 12.93, 77.62))

	v := startView(t, store, models.FleetConfig{})
	held := waitForFleet(t, v, func(s *models.FleetSnapshot) bool { return s.Len() == 2 })

	require.NoError(t, store.Delete(context.Background(), "bus-1"))

	snapshot := waitForFleet(t, v, func(s *models.FleetSnapshot) bool { return s.Len() == 1 })
	_, found := snapshot.Find("bus-1")
	assert.False(t, found)
	assert.Equal(t, 2, held.Len(), "earlier snapshots are never modified")
}

func TestFleetView_DropsMalformedEntries(t *testing.T) {
	store := positionstore.NewMemoryStore(positionstore.Options{})
	upsert(t, store, position("bus-1", 12.97, 77.59))
	require.NoError(t, store.Upsert(context.Background(), "bus-partial", map[string]string{
		constants.FieldStatus: string(models.VehicleOnTrip),
	}))
	require.NoError(t, store.Upsert(context.Background(), "bus-garbled", map[string]string{
		constants.FieldLatitude:  "north",
		constants.FieldLongitude: "77.5",
	}))

	v := startView(t, store, models.FleetConfig{})
	snapshot := waitForFleet(t, v, func(s *models.FleetSnapshot) bool { return !s.TakenAt.IsZero() && s.Len() > 0 })

	assert.Equal(t, 1, snapshot.Len())
	assert.Equal(t, "bus-1", snapshot.Vehicles[0].VehicleID)
}

func TestFleetView_FiltersStaleEntries(t *testing.T) {
	v := NewFleetView(positionstore.NewMemoryStore(positionstore.Options{}), models.FleetConfig{StaleAfter: 2 * time.Minute})
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return now }

	fresh := position("bus-fresh", 1, 1)
	fresh.UpdatedAt = now.Add(-time.Minute)
	stale := position("bus-stale", 1, 1)
	stale.UpdatedAt = now.Add(-3 * time.Minute)
	unknown := position("bus-unknown", 1, 1)

	docs := []positionstore.Document{
		{Key: fresh.VehicleID, Fields: positionstore.EncodeFields(fresh)},
		{Key: stale.VehicleID, Fields: positionstore.EncodeFields(stale)},
		{Key: unknown.VehicleID, Fields: map[string]string{constants.FieldLatitude: "1", constants.FieldLongitude: "1"}},
	}
	v.apply(docs)

	snapshot := v.Current()
	assert.Equal(t, 2, snapshot.Len())
	_, ok := snapshot.Find("bus-stale")
	assert.False(t, ok)
	_, ok = snapshot.Find("bus-unknown")
	assert.True(t, ok, "entries without a timestamp are not stale")
	assert.Equal(t, now, snapshot.TakenAt)
}

func TestFleetView_StalenessDisabled(t *testing.T) {
	v := NewFleetView(positionstore.NewMemoryStore(positionstore.Options{}), models.FleetConfig{})

	old := position("bus-old", 1, 1)
	old.UpdatedAt = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	v.apply([]positionstore.Document{{Key: old.VehicleID, Fields: positionstore.EncodeFields(old)}})

	assert.Equal(t, 1, v.Current().Len())
}

func TestFleetView_IdempotentUpsert(t *testing.T) {
	store := positionstore.NewMemoryStore(positionstore.Options{})
	pos := position("bus-1", 12.97, 77.59)
	upsert(t, store, pos)

	v := startView(t, store, models.FleetConfig{})
	before := waitForFleet(t, v, func(s *models.FleetSnapshot) bool { return s.Len() == 1 })

	updated := v.Updated()
	upsert(t, store, pos)
	<-updated

	after := v.Current()
	assert.Equal(t, before.Vehicles, after.Vehicles)
}

// flakyFeed fails its first subscriptions, then delegates
type flakyFeed struct {
	failures int32
	calls    atomic.Int32
	store    positionstore.Store
}

func (f *flakyFeed) Subscribe(ctx context.Context) (positionstore.Subscription, error) {
	if f.calls.Add(1) <= f.failures {
		return nil, errors.New("connection refused")
	}
	return f.store.Subscribe(ctx)
}

func TestFleetView_ResubscribesAfterFailure(t *testing.T) {
	store := positionstore.NewMemoryStore(positionstore.Options{})
	upsert(t, store, position("bus-1", 12.97, 77.59))
	feed := &flakyFeed{failures: 2, store: store}

	v := startView(t, feed, models.FleetConfig{})

	waitForFleet(t, v, func(s *models.FleetSnapshot) bool { return s.Len() == 1 })
	assert.Equal(t, int32(3), feed.calls.Load())
}

// closingFeed hands out subscriptions that are closed right away
type closingFeed struct {
	calls atomic.Int32
	store positionstore.Store
}

func (f *closingFeed) Subscribe(ctx context.Context) (positionstore.Subscription, error) {
	sub, err := f.store.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	if f.calls.Add(1) == 1 {
		sub.Close()
	}
	return sub, nil
}

func TestFleetView_ResubscribesAfterStreamEnds(t *testing.T) {
	store := positionstore.NewMemoryStore(positionstore.Options{})
	upsert(t, store, position("bus-1", 12.97, 77.59))
	feed := &closingFeed{store: store}

	v := startView(t, feed, models.FleetConfig{})

	waitForFleet(t, v, func(s *models.FleetSnapshot) bool { return s.Len() == 1 })
	assert.GreaterOrEqual(t, feed.calls.Load(), int32(2))
}

func TestFleetView_RedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := positionstore.NewRedisStore(&database.RedisClient{Client: client}, positionstore.Options{PositionTTL: time.Minute})
	v := startView(t, store, models.FleetConfig{StaleAfter: 2 * time.Minute})

	upsert(t, store, position("bus-1", 12.97, 77.59))
	upsert(t, store, position("bus-2", 12.93, 77.62))
	waitForFleet(t, v, func(s *models.FleetSnapshot) bool { return s.Len() == 2 })

	require.NoError(t, store.Delete(context.Background(), "bus-2"))
	snapshot := waitForFleet(t, v, func(s *models.FleetSnapshot) bool { return s.Len() == 1 })
	assert.Equal(t, "bus-1", snapshot.Vehicles[0].VehicleID)
}
