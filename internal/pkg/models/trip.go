package models

import "time"

// SessionState is the lifecycle state of a tracking session
type SessionState string

const (
	SessionStopped  SessionState = "STOPPED"
	SessionTracking SessionState = "TRACKING"
)

// TripStatus is a point-in-time view of one vehicle's tracking session
type TripStatus struct {
	VehicleID     string          `json:"vehicle_id"`
	SessionID     string          `json:"session_id,omitempty"`
	State         SessionState    `json:"state"`
	StartedAt     *time.Time      `json:"started_at,omitempty"`
	LastSample    *LocationSample `json:"last_sample,omitempty"`
	Rider         *RiderPosition  `json:"rider,omitempty"`
	DistanceKm    *float64        `json:"distance_km,omitempty"`
	SamplesQueued uint64          `json:"samples_queued"`
	WritesFailed  uint64          `json:"writes_failed"`
}

// StartTripRequest is the body of a trip start call
type StartTripRequest struct {
	Status VehicleStatus `json:"status" validate:"omitempty,oneof=idle on_trip"`
}
