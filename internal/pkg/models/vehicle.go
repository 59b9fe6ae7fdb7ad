package models

import "time"

// VehicleStatus is the trip state a vehicle reports about itself
type VehicleStatus string

const (
	VehicleIdle   VehicleStatus = "idle"
	VehicleOnTrip VehicleStatus = "on_trip"
)

// VehiclePosition is the live record a tracking session keeps in the
// position store. It exists only while its session is tracking.
type VehiclePosition struct {
	VehicleID string        `json:"vehicle_id"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Status    VehicleStatus `json:"status"`
	UpdatedAt time.Time     `json:"updated_at"`
	Owner     string        `json:"owner,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
	Geohash   string        `json:"geohash,omitempty"`
}

// FleetSnapshot is a point-in-time set of active vehicles, ordered by
// VehicleID. A snapshot is never modified after it is published.
type FleetSnapshot struct {
	Vehicles []VehiclePosition `json:"vehicles"`
	TakenAt  time.Time         `json:"taken_at"`
}

// Len returns the number of vehicles in the snapshot
func (s *FleetSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Vehicles)
}

// Find looks a vehicle up by id
func (s *FleetSnapshot) Find(vehicleID string) (VehiclePosition, bool) {
	if s == nil {
		return VehiclePosition{}, false
	}
	for _, v := range s.Vehicles {
		if v.VehicleID == vehicleID {
			return v, true
		}
	}
	return VehiclePosition{}, false
}

// RendezvousResult names the vehicle nearest to a rider
type RendezvousResult struct {
	VehicleID  string  `json:"vehicle_id"`
	DistanceKm float64 `json:"distance_km"`
}
