package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/services/tracking"
)

// TrackingUC implements the tracking.TrackingUC interface. It keeps at
// most one session per vehicle.
type TrackingUC struct {
	repo   tracking.PositionRepo
	source tracking.LocationSource
	opts   SessionOptions

	mu       sync.Mutex
	sessions map[string]*Session
	locks    map[string]*vehicleLock
}

// vehicleLock serializes lifecycle changes of one vehicle together with
// its registry entry
type vehicleLock struct {
	mu   sync.Mutex
	refs int
}

// NewTrackingUC creates a new tracking use case
func NewTrackingUC(repo tracking.PositionRepo, source tracking.LocationSource, cfg models.TrackingConfig) *TrackingUC {
	return &TrackingUC{
		repo:     repo,
		source:   source,
		opts:     SessionOptions{WriteTimeout: cfg.WriteTimeout},
		sessions: make(map[string]*Session),
		locks:    make(map[string]*vehicleLock),
	}
}

// lockVehicle blocks until the caller owns vehicleID's lifecycle and
// returns the release func
func (uc *TrackingUC) lockVehicle(vehicleID string) func() {
	uc.mu.Lock()
	l, ok := uc.locks[vehicleID]
	if !ok {
		l = &vehicleLock{}
		uc.locks[vehicleID] = l
	}
	l.refs++
	uc.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		uc.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(uc.locks, vehicleID)
		}
		uc.mu.Unlock()
	}
}

func (uc *TrackingUC) session(vehicleID string) (*Session, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.sessions[vehicleID]
	return s, ok
}

// StartTrip starts tracking the caller's vehicle. The vehicle id is the
// caller's user id and the owner is their email.
func (uc *TrackingUC) StartTrip(ctx context.Context, identity models.Identity) (models.TripStatus, error) {
	unlock := uc.lockVehicle(identity.UserID)
	defer unlock()

	uc.mu.Lock()
	s, ok := uc.sessions[identity.UserID]
	if !ok {
		s = NewSession(identity.UserID, identity.Email, uc.repo, uc.source, uc.opts)
		uc.sessions[identity.UserID] = s
	}
	uc.mu.Unlock()

	if err := s.Start(ctx); err != nil {
		if !errors.Is(err, models.ErrAlreadyTracking) {
			uc.forget(identity.UserID, s)
		}
		return s.Status(), err
	}
	return s.Status(), nil
}

// StopTrip stops the vehicle's session. The session is released even when
// removing the position fails.
func (uc *TrackingUC) StopTrip(ctx context.Context, vehicleID string) (models.TripStatus, error) {
	unlock := uc.lockVehicle(vehicleID)
	defer unlock()

	s, ok := uc.session(vehicleID)
	if !ok {
		return models.TripStatus{}, models.ErrSessionNotFound
	}

	err := s.Stop(ctx)
	uc.forget(vehicleID, s)
	return s.Status(), err
}

// forget drops s if it is still the registered, stopped session for
// vehicleID. Callers hold the vehicle lock.
func (uc *TrackingUC) forget(vehicleID string, s *Session) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if current, ok := uc.sessions[vehicleID]; ok && current == s && s.State() == models.SessionStopped {
		delete(uc.sessions, vehicleID)
	}
}

// PushSample forwards a device fix to the push source
func (uc *TrackingUC) PushSample(ctx context.Context, vehicleID string, sample models.LocationSample) error {
	pusher, ok := uc.source.(tracking.SamplePusher)
	if !ok {
		return models.ErrNoLocationSource
	}
	s, ok := uc.session(vehicleID)
	if !ok || s.State() != models.SessionTracking {
		return models.ErrSessionNotFound
	}
	return pusher.Push(ctx, vehicleID, sample)
}

// SetRider sets or clears the rider shown next to the vehicle's status
func (uc *TrackingUC) SetRider(vehicleID string, rider *models.RiderPosition) error {
	s, ok := uc.session(vehicleID)
	if !ok {
		return models.ErrSessionNotFound
	}
	s.SetRider(rider)
	return nil
}

// Status returns the vehicle's session status
func (uc *TrackingUC) Status(vehicleID string) (models.TripStatus, error) {
	s, ok := uc.session(vehicleID)
	if !ok {
		return models.TripStatus{VehicleID: vehicleID, State: models.SessionStopped}, models.ErrSessionNotFound
	}
	return s.Status(), nil
}

// StopAll stops every session and joins the delete failures
func (uc *TrackingUC) StopAll(ctx context.Context) error {
	uc.mu.Lock()
	ids := make([]string, 0, len(uc.sessions))
	for id := range uc.sessions {
		ids = append(ids, id)
	}
	uc.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := uc.stopRegistered(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}

	logger.Info("Stopped all tracking sessions",
		logger.Int("sessions", len(ids)),
		logger.Int("failed", len(errs)))
	return errors.Join(errs...)
}

func (uc *TrackingUC) stopRegistered(ctx context.Context, vehicleID string) error {
	unlock := uc.lockVehicle(vehicleID)
	defer unlock()

	s, ok := uc.session(vehicleID)
	if !ok {
		return nil
	}
	err := s.Stop(ctx)
	uc.forget(vehicleID, s)
	return err
}

var _ tracking.TrackingUC = (*TrackingUC)(nil)
