package rider

import (
	"context"

	"github.com/yatralink/bustrack/internal/pkg/models"
)

// RiderUC defines the interface for rider-side fleet queries
type RiderUC interface {
	// Fleet returns the current fleet snapshot. It never blocks.
	Fleet() *models.FleetSnapshot
	// FleetUpdated returns a channel closed on the next snapshot swap.
	FleetUpdated() <-chan struct{}
	// Rendezvous finds the nearest vehicle to the rider and estimates its arrival.
	Rendezvous(ctx context.Context, rider models.RiderPosition) (models.Rendezvous, error)
}
