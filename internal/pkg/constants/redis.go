package constants

// Redis key formats
const (
	KeyBusPosition       = "bus:position:%s"       // Format: bus:position:{vehicle_id}
	KeyActiveBuses       = "bus:active"            // Set of vehicle ids with a live position
	ChannelBusPositions  = "bus:positions:changed" // Pub/Sub channel, payload is the changed vehicle id
	KeyBusPositionPrefix = "bus:position:"
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldTimestamp = "ts" // unix millis
	FieldStatus    = "status"
	FieldOwner     = "owner"
	FieldSession   = "session"
	FieldGeohash   = "geohash"
)
