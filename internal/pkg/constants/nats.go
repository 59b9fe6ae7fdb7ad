package constants

// NATS Subjects
const (
	// SubjectVehicleLocation carries raw device fixes, format: vehicle.location.{vehicle_id}
	SubjectVehicleLocation = "vehicle.location.%s"
)
