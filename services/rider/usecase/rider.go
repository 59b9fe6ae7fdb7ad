package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/utils"
	"github.com/yatralink/bustrack/services/rider"
)

// RiderUC implements the rider.RiderUC interface
type RiderUC struct {
	fleet   *FleetView
	weather rider.WeatherGW
	loc     *time.Location
	now     func() time.Time
}

// NewRiderUC creates a new rider use case. Hours of day for estimates are
// taken in loc.
func NewRiderUC(fleet *FleetView, weather rider.WeatherGW, loc *time.Location) *RiderUC {
	return &RiderUC{
		fleet:   fleet,
		weather: weather,
		loc:     loc,
		now:     models.Now,
	}
}

// Fleet returns the current fleet snapshot
func (uc *RiderUC) Fleet() *models.FleetSnapshot {
	return uc.fleet.Current()
}

// FleetUpdated returns a channel closed on the next fleet change
func (uc *RiderUC) FleetUpdated() <-chan struct{} {
	return uc.fleet.Updated()
}

// Rendezvous picks the nearest vehicle and estimates its arrival. With no
// vehicle available only the weather and rider are filled in.
func (uc *RiderUC) Rendezvous(ctx context.Context, r models.RiderPosition) (models.Rendezvous, error) {
	if !utils.IsFiniteCoordinate(r.Latitude, r.Longitude) {
		return models.Rendezvous{}, fmt.Errorf("%w: rider coordinates must be finite", models.ErrInvalidPosition)
	}
	if r.ObservedAt.IsZero() {
		r.ObservedAt = uc.now()
	}

	snapshot := uc.fleet.Current()
	result := models.Rendezvous{
		Rider:   r,
		Weather: uc.weather.Current(ctx, r.Latitude, r.Longitude),
		Fleet:   snapshot.Len(),
	}

	nearest, ok := Nearest(r, snapshot)
	if !ok {
		return result, nil
	}

	vehicle, _ := snapshot.Find(nearest.VehicleID)
	estimate := Estimate(nearest.DistanceKm, models.HourIn(uc.now(), uc.loc), result.Weather.Condition)

	result.Nearest = &nearest
	result.Vehicle = &vehicle
	result.Estimate = &estimate

	logger.Debug("Rendezvous computed",
		logger.String("vehicle_id", nearest.VehicleID),
		logger.Float64("distance_km", nearest.DistanceKm),
		logger.Float64("eta_minutes", estimate.EtaMinutes))
	return result, nil
}

var _ rider.RiderUC = (*RiderUC)(nil)
