package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	reqctx "github.com/yatralink/bustrack/internal/pkg/context"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/pkg/positionstore"
	"github.com/yatralink/bustrack/internal/utils"
	"github.com/yatralink/bustrack/services/tracking"
)

// SessionOptions tunes a publisher session
type SessionOptions struct {
	// WriteTimeout bounds each store write.
	WriteTimeout time.Duration
	// Status is written with every sample. Defaults to on_trip.
	Status models.VehicleStatus
}

// Session publishes one vehicle's location to the position store while it
// is TRACKING. The vehicle's entry exists only between Start and Stop.
type Session struct {
	vehicleID string
	owner     string
	store     tracking.PositionRepo
	source    tracking.LocationSource
	opts      SessionOptions
	now       func() time.Time

	// op serializes Start and Stop
	op sync.Mutex

	mu        sync.RWMutex
	state     models.SessionState
	sessionID string
	startedAt time.Time
	latest    *models.LocationSample
	rider     *models.RiderPosition
	feed      tracking.Feed
	cancel    context.CancelFunc
	done      chan struct{}

	queued atomic.Uint64
	failed atomic.Uint64
}

// NewSession creates a STOPPED session for vehicleID
func NewSession(vehicleID, owner string, store tracking.PositionRepo, source tracking.LocationSource, opts SessionOptions) *Session {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.Status == "" {
		opts.Status = models.VehicleOnTrip
	}
	return &Session{
		vehicleID: vehicleID,
		owner:     owner,
		store:     store,
		source:    source,
		opts:      opts,
		now:       models.Now,
		state:     models.SessionStopped,
	}
}

// Start begins tracking. It fails with ErrNoLocationSource when no feed
// can be started and with ErrAlreadyTracking when already started.
func (s *Session) Start(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	if s.State() == models.SessionTracking {
		return models.ErrAlreadyTracking
	}
	if s.source == nil {
		return models.ErrNoLocationSource
	}

	feed, err := s.source.Watch(ctx, s.vehicleID)
	if err != nil {
		if errors.Is(err, models.ErrNoLocationSource) {
			return err
		}
		return fmt.Errorf("%w: %v", models.ErrNoLocationSource, err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	sessionID := uuid.NewString()
	mailbox := make(chan models.VehiclePosition, 1)
	done := make(chan struct{})

	s.queued.Store(0)
	s.failed.Store(0)

	s.mu.Lock()
	s.state = models.SessionTracking
	s.sessionID = sessionID
	s.startedAt = s.now()
	s.latest = nil
	s.feed = feed
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.sample(loopCtx, feed, sessionID, mailbox)
	}()
	go func() {
		defer wg.Done()
		s.write(loopCtx, mailbox)
	}()
	go func() {
		wg.Wait()
		close(done)
	}()

	logger.Info("Tracking session started", withRequestID(ctx,
		logger.String("vehicle_id", s.vehicleID),
		logger.String("session_id", sessionID))...)
	return nil
}

// Stop ends tracking and deletes the vehicle's entry. The session is
// STOPPED afterwards even when the delete fails; the failure is returned
// wrapping ErrStoreDelete. The delete outlives cancellation of ctx.
// Stopping a stopped session does nothing.
func (s *Session) Stop(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.RLock()
	state, feed, cancel, done, sessionID := s.state, s.feed, s.cancel, s.done, s.sessionID
	s.mu.RUnlock()

	if state == models.SessionStopped {
		return nil
	}

	cancel()
	if err := feed.Close(); err != nil {
		logger.Warn("Failed to close location feed",
			logger.String("vehicle_id", s.vehicleID),
			logger.Err(err))
	}
	// No write may land after the delete below
	<-done

	s.mu.Lock()
	s.state = models.SessionStopped
	s.feed = nil
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	deleteCtx, cancelDelete := context.WithTimeout(context.WithoutCancel(ctx), s.opts.WriteTimeout)
	defer cancelDelete()

	if err := s.store.Delete(deleteCtx, s.vehicleID); err != nil {
		logger.Error("Failed to remove vehicle position", withRequestID(ctx,
			logger.String("vehicle_id", s.vehicleID),
			logger.String("session_id", sessionID),
			logger.Err(err))...)
		if errors.Is(err, models.ErrStoreDelete) {
			return err
		}
		return fmt.Errorf("%w: vehicle %s: %v", models.ErrStoreDelete, s.vehicleID, err)
	}

	logger.Info("Tracking session stopped", withRequestID(ctx,
		logger.String("vehicle_id", s.vehicleID),
		logger.String("session_id", sessionID))...)
	return nil
}

func withRequestID(ctx context.Context, fields ...logger.Field) []logger.Field {
	if requestID := reqctx.GetRequestID(ctx); requestID != "" {
		fields = append(fields, logger.String("request_id", requestID))
	}
	return fields
}

// sample turns feed readings into positions. A failed reading is a
// missing sample for that tick.
func (s *Session) sample(ctx context.Context, feed tracking.Feed, sessionID string, mailbox chan models.VehiclePosition) {
	readings := feed.Readings()
	for {
		select {
		case <-ctx.Done():
			return
		case reading, ok := <-readings:
			if !ok {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("Location feed ended",
					logger.String("vehicle_id", s.vehicleID),
					logger.String("session_id", sessionID))
				return
			}
			if reading.Err != nil || reading.Sample == nil {
				logger.Debug("No location sample",
					logger.String("vehicle_id", s.vehicleID),
					logger.Err(reading.Err))
				continue
			}

			sample := *reading.Sample
			if !utils.IsFiniteCoordinate(sample.Latitude, sample.Longitude) {
				logger.Debug("Dropping non-finite location sample",
					logger.String("vehicle_id", s.vehicleID))
				continue
			}

			s.mu.Lock()
			s.latest = &sample
			s.mu.Unlock()

			post(mailbox, models.VehiclePosition{
				VehicleID: s.vehicleID,
				Latitude:  sample.Latitude,
				Longitude: sample.Longitude,
				Status:    s.opts.Status,
				UpdatedAt: s.now(),
				SessionID: sessionID,
				Geohash:   utils.EncodeGeohash(sample.Latitude, sample.Longitude, utils.GeohashPrecision),
			})
			s.queued.Add(1)
		}
	}
}

// write drains the mailbox into the store. The owner is written with
// the first successful upsert and preserved by merge afterwards.
func (s *Session) write(ctx context.Context, mailbox chan models.VehiclePosition) {
	ownerWritten := s.owner == ""
	for {
		select {
		case <-ctx.Done():
			return
		case pos := <-mailbox:
			if !ownerWritten {
				pos.Owner = s.owner
			}

			writeCtx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
			err := s.store.Upsert(writeCtx, s.vehicleID, positionstore.EncodeFields(pos))
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.failed.Add(1)
				logger.Warn("Failed to write vehicle position",
					logger.String("vehicle_id", s.vehicleID),
					logger.Err(err))
				continue
			}
			ownerWritten = true
		}
	}
}

// post delivers pos to a one-slot mailbox, replacing any unwritten position
func post(mailbox chan models.VehiclePosition, pos models.VehiclePosition) {
	for {
		select {
		case mailbox <- pos:
			return
		default:
		}
		select {
		case <-mailbox:
		default:
		}
	}
}

// SetRider sets the rider used for the display distance. nil clears it.
func (s *Session) SetRider(rider *models.RiderPosition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rider == nil {
		s.rider = nil
		return
	}
	r := *rider
	s.rider = &r
}

// State returns the session's lifecycle state
func (s *Session) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Status reports the session, including the distance between the latest
// sample and the rider when both are known. The distance is display only.
func (s *Session) Status() models.TripStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := models.TripStatus{
		VehicleID:     s.vehicleID,
		State:         s.state,
		SamplesQueued: s.queued.Load(),
		WritesFailed:  s.failed.Load(),
	}
	if s.state == models.SessionTracking {
		startedAt := s.startedAt
		status.SessionID = s.sessionID
		status.StartedAt = &startedAt
	}
	if s.latest != nil {
		latest := *s.latest
		status.LastSample = &latest
	}
	if s.rider != nil {
		rider := *s.rider
		status.Rider = &rider
	}
	if s.latest != nil && s.rider != nil {
		km := utils.DistanceKm(
			utils.GeoPoint{Latitude: s.latest.Latitude, Longitude: s.latest.Longitude},
			utils.GeoPoint{Latitude: s.rider.Latitude, Longitude: s.rider.Longitude},
		)
		status.DistanceKm = &km
	}
	return status
}
