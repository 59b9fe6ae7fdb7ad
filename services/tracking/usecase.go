package tracking

import (
	"context"

	"github.com/yatralink/bustrack/internal/pkg/models"
)

// TrackingUC defines the interface for driver-side trip tracking
type TrackingUC interface {
	// StartTrip opens a tracking session for the authenticated vehicle.
	StartTrip(ctx context.Context, identity models.Identity) (models.TripStatus, error)
	// StopTrip ends the session and removes the vehicle from the live fleet.
	StopTrip(ctx context.Context, vehicleID string) (models.TripStatus, error)
	// PushSample hands a device fix to the push location source.
	PushSample(ctx context.Context, vehicleID string, sample models.LocationSample) error
	// SetRider sets or clears the display-only rider position.
	SetRider(vehicleID string, rider *models.RiderPosition) error
	Status(vehicleID string) (models.TripStatus, error)
	// StopAll stops every session, used on shutdown.
	StopAll(ctx context.Context) error
}
