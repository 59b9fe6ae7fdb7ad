package models

import "time"

// Location represents a geographical location with latitude and longitude
type Location struct {
	Latitude  float64   `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64   `json:"longitude" validate:"min=-180,max=180"`
	Timestamp time.Time `json:"timestamp"`
}

// LocationSample is one fix reported by a vehicle's location source
type LocationSample struct {
	Latitude  float64   `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64   `json:"longitude" validate:"min=-180,max=180"`
	Accuracy  float64   `json:"accuracy" validate:"gte=0"`
	Timestamp time.Time `json:"timestamp"`
}

// LocationReading is a single delivery from a location feed. Exactly one of
// Sample or Err is set; an Err means no sample for that tick.
type LocationReading struct {
	Sample *LocationSample
	Err    error
}

// RiderPosition is the waiting rider's own location. It is never persisted.
type RiderPosition struct {
	Latitude   float64   `json:"latitude" validate:"min=-90,max=90"`
	Longitude  float64   `json:"longitude" validate:"min=-180,max=180"`
	ObservedAt time.Time `json:"observed_at"`
}
