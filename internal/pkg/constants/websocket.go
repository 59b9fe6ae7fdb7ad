package constants

// WebSocket event types
const (
	// Common events
	EventError = "error"
	EventPing  = "ping"
	EventPong  = "pong"

	// Rider events
	EventRiderLocation = "rider_location"
	EventRendezvous    = "rendezvous"
)

// WebSocket error codes
const (
	ErrorInvalidFormat    = "invalid_format"
	ErrorValidationFailed = "validation_failed"
	ErrorInternalError    = "internal_error"
)

// Identity roles
const (
	RoleDriver = "driver"
	RoleRider  = "rider"
)
