package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/pkg/positionstore"
	"github.com/yatralink/bustrack/internal/pkg/retry"
	"github.com/yatralink/bustrack/services/rider"
)

// FleetView keeps the rider-side snapshot of all active vehicles. Every
// store notification replaces the snapshot as a whole, so readers never
// see a partial set.
type FleetView struct {
	feed       rider.PositionFeed
	staleAfter time.Duration
	retrier    *retry.Retrier
	now        func() time.Time

	current atomic.Pointer[models.FleetSnapshot]

	mu      sync.Mutex
	updated chan struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// NewFleetView creates a view with an empty snapshot. Call Start to
// begin following the store.
func NewFleetView(feed rider.PositionFeed, cfg models.FleetConfig) *FleetView {
	retryCfg := retry.DefaultConfig()
	retryCfg.BaseDelay = 500 * time.Millisecond
	retryCfg.MaxDelay = 30 * time.Second

	v := &FleetView{
		feed:       feed,
		staleAfter: cfg.StaleAfter,
		retrier:    retry.New(retryCfg, nil),
		now:        models.Now,
		updated:    make(chan struct{}),
	}
	v.current.Store(&models.FleetSnapshot{Vehicles: []models.VehiclePosition{}, TakenAt: v.now()})
	return v
}

// Start follows the store until ctx is cancelled or Close is called
func (v *FleetView) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.done = make(chan struct{})
	go v.run(ctx)
}

// Close stops following the store and waits for the loop to exit
func (v *FleetView) Close() {
	if v.cancel == nil {
		return
	}
	v.cancel()
	<-v.done
}

// Current returns the latest snapshot. The result must not be modified.
func (v *FleetView) Current() *models.FleetSnapshot {
	return v.current.Load()
}

// Updated returns a channel that is closed when the snapshot is next replaced
func (v *FleetView) Updated() <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.updated
}

// run subscribes and consumes until cancelled. A failed subscription is
// closed and reopened after a backoff; the loop itself never gives up.
func (v *FleetView) run(ctx context.Context) {
	defer close(v.done)

	attempt := 0
	for {
		sub, err := v.feed.Subscribe(ctx)
		if err == nil {
			attempt = 0
			err = v.consume(ctx, sub)
			_ = sub.Close()
		}
		if ctx.Err() != nil {
			return
		}

		logger.Warn("Fleet subscription failed, resubscribing",
			logger.Int("attempt", attempt+1),
			logger.Err(err))
		if waitErr := v.retrier.Wait(ctx, attempt); waitErr != nil {
			return
		}
		attempt++
	}
}

func (v *FleetView) consume(ctx context.Context, sub positionstore.Subscription) error {
	for {
		docs, err := sub.Next(ctx)
		if err != nil {
			return err
		}
		v.apply(docs)
	}
}

// apply decodes docs, drops malformed and stale entries, and publishes
// the result as the new snapshot
func (v *FleetView) apply(docs []positionstore.Document) {
	positions, dropped := positionstore.DecodeDocuments(docs)
	now := v.now()

	vehicles := positions[:0]
	stale := 0
	for _, pos := range positions {
		if v.isStale(pos, now) {
			stale++
			continue
		}
		vehicles = append(vehicles, pos)
	}

	if dropped > 0 || stale > 0 {
		logger.Debug("Filtered fleet entries",
			logger.Int("malformed", dropped),
			logger.Int("stale", stale))
	}

	v.publish(&models.FleetSnapshot{Vehicles: vehicles, TakenAt: now})
}

// isStale reports entries whose last update is older than staleAfter.
// Entries without a timestamp are kept.
func (v *FleetView) isStale(pos models.VehiclePosition, now time.Time) bool {
	if v.staleAfter <= 0 || pos.UpdatedAt.IsZero() {
		return false
	}
	return now.Sub(pos.UpdatedAt) > v.staleAfter
}

func (v *FleetView) publish(snapshot *models.FleetSnapshot) {
	v.current.Store(snapshot)

	v.mu.Lock()
	close(v.updated)
	v.updated = make(chan struct{})
	v.mu.Unlock()
}
