package tracking

import (
	"context"

	"github.com/yatralink/bustrack/internal/pkg/models"
)

// LocationSource starts location feeds for vehicles
type LocationSource interface {
	// Watch starts a feed for vehicleID. An error means no feed is available.
	Watch(ctx context.Context, vehicleID string) (Feed, error)
}

// Feed is a running stream of location readings for one vehicle
type Feed interface {
	// Readings is closed when the feed ends.
	Readings() <-chan models.LocationReading
	Close() error
}

// SamplePusher accepts samples delivered to the service by the device itself
type SamplePusher interface {
	Push(ctx context.Context, vehicleID string, sample models.LocationSample) error
}
