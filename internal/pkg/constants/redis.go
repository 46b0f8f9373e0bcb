package constants

// Redis key formats
const (
	KeyLock = "carpool:lock:%s" // Format: carpool:lock:{lock key}
)

// Per-key serialization scopes
const (
	LockScopeTrip    = "trip:%s"    // Format: trip:{trip_id}, guards the seat ledger
	LockScopeBooking = "booking:%s" // Format: booking:{booking_id}, guards booking transitions
)

// KeyRateLimit Format: carpool:ratelimit:{resource}:{caller}
const KeyRateLimit = "carpool:ratelimit:%s:%s"
