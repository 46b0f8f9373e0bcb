// Package lock provides per-key mutual exclusion. Operations on one trip
// ledger or one booking serialize on their key while unrelated keys proceed
// in parallel.
package lock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/constants"
)

// Locker serializes work per key. The returned unlock func must be called
// exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// TripKey scopes the seat ledger of a trip
func TripKey(tripID uuid.UUID) string {
	return fmt.Sprintf(constants.LockScopeTrip, tripID)
}

// BookingKey scopes the state machine of a booking
func BookingKey(bookingID uuid.UUID) string {
	return fmt.Sprintf(constants.LockScopeBooking, bookingID)
}
