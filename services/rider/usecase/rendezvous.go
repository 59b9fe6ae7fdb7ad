package usecase

import (
	"math"

	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/utils"
)

// Nearest returns the vehicle closest to the rider. Equal distances go to
// the lowest vehicle id. It reports false when the snapshot has no vehicle
// at a finite distance.
func Nearest(rider models.RiderPosition, snapshot *models.FleetSnapshot) (models.RendezvousResult, bool) {
	if snapshot.Len() == 0 {
		return models.RendezvousResult{}, false
	}

	origin := utils.GeoPoint{Latitude: rider.Latitude, Longitude: rider.Longitude}

	var best models.RendezvousResult
	found := false
	for _, v := range snapshot.Vehicles {
		d := utils.DistanceKm(origin, utils.GeoPoint{Latitude: v.Latitude, Longitude: v.Longitude})
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		if !found || d < best.DistanceKm || (d == best.DistanceKm && v.VehicleID < best.VehicleID) {
			best = models.RendezvousResult{VehicleID: v.VehicleID, DistanceKm: d}
			found = true
		}
	}
	return best, found
}
