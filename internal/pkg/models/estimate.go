package models

// CrowdLevel is the expected occupancy of buses at a given hour
type CrowdLevel string

const (
	CrowdLow    CrowdLevel = "LOW"
	CrowdMedium CrowdLevel = "MEDIUM"
	CrowdHigh   CrowdLevel = "HIGH"
)

// DelayStatus classifies an arrival estimate
type DelayStatus string

const (
	OnTime  DelayStatus = "ON_TIME"
	Delayed DelayStatus = "DELAYED"
)

// Estimate is a heuristic arrival prediction. It is an approximation
// derived from hour of day and weather, not from a route graph.
type Estimate struct {
	EtaMinutes  float64     `json:"eta_minutes"`
	CrowdLevel  CrowdLevel  `json:"crowd_level"`
	DelayStatus DelayStatus `json:"delay_status"`
	SpeedKmh    float64     `json:"speed_kmh"`
}

// Rendezvous bundles everything a rider needs to know about the nearest bus.
// Vehicle and Estimate are nil when no vehicle is being tracked.
type Rendezvous struct {
	Rider    RiderPosition     `json:"rider"`
	Nearest  *RendezvousResult `json:"nearest,omitempty"`
	Vehicle  *VehiclePosition  `json:"vehicle,omitempty"`
	Weather  Weather           `json:"weather"`
	Estimate *Estimate         `json:"estimate,omitempty"`
	Fleet    int               `json:"fleet_size"`
}
