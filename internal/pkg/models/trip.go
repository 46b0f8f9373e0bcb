package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TripStatus represents the current status of a trip
type TripStatus string

const (
	TripStatusScheduled TripStatus = "scheduled"
	TripStatusCancelled TripStatus = "cancelled"
	TripStatusCompleted TripStatus = "completed"
)

// CanTransitionTo reports whether s may move to next. Cancelled and completed
// trips are terminal.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	return s == TripStatusScheduled && (next == TripStatusCancelled || next == TripStatusCompleted)
}

// Vehicle is a driver-owned vehicle whose capacity bounds the trips offered with it
type Vehicle struct {
	ID           uuid.UUID `json:"id" db:"id"`
	DriverID     uuid.UUID `json:"driver_id" db:"driver_id"`
	Registration string    `json:"registration" db:"registration"`
	Model        string    `json:"model" db:"model"`
	Capacity     int       `json:"capacity" db:"capacity"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Trip represents a scheduled ride offered by a driver
type Trip struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	DriverID      uuid.UUID  `json:"driver_id" db:"driver_id"`
	VehicleID     uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	Source        string     `json:"source" db:"source"`
	Destination   string     `json:"destination" db:"destination"`
	DepartureTime time.Time  `json:"departure_time" db:"departure_time"`
	TotalSeats    int        `json:"total_seats" db:"total_seats"`
	PricePerSeat  int64      `json:"price_per_seat" db:"price_per_seat"`
	Status        TripStatus `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Transition moves the trip to next or returns ErrInvalidTransition.
func (t *Trip) Transition(next TripStatus, now time.Time) error {
	if !t.Status.CanTransitionTo(next) {
		return fmt.Errorf("trip %s %s -> %s: %w", t.ID, t.Status, next, ErrInvalidTransition)
	}
	t.Status = next
	t.UpdatedAt = now
	return nil
}

// AddVehicleRequest registers a vehicle for a driver
type AddVehicleRequest struct {
	DriverID     uuid.UUID `json:"-"`
	Registration string    `json:"registration"`
	Model        string    `json:"model"`
	Capacity     int       `json:"capacity"`
}

// CreateTripRequest is the driver's offer of seats on a vehicle
type CreateTripRequest struct {
	DriverID      uuid.UUID `json:"-"`
	VehicleID     uuid.UUID `json:"vehicle_id"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	Seats         int       `json:"seats"`
	PricePerSeat  int64     `json:"price"`
}

// BookingFailure records a dependent booking a trip cancellation could not
// settle. The trip stays cancelled and the booking can be retried.
type BookingFailure struct {
	BookingID uuid.UUID `json:"booking_id"`
	Kind      Kind      `json:"kind"`
	Reason    string    `json:"reason"`
}

// TripCancellation is the report returned by a trip cancellation fan-out
type TripCancellation struct {
	Trip         *Trip            `json:"trip"`
	Cancelled    []uuid.UUID      `json:"cancelled"`
	Refunded     []uuid.UUID      `json:"refunded"`
	Failures     []BookingFailure `json:"failures"`
	StepFailures []StepFailure    `json:"step_failures"`
}

// Trip-level steps that run after the status flip
const (
	StepFreezeLedger = "freeze_ledger"
	StepListBookings = "list_bookings"
)

// StepFailure records a trip-level step that failed after the trip already
// changed status. Closing the trip again retries it.
type StepFailure struct {
	Step   string `json:"step"`
	Kind   Kind   `json:"kind"`
	Reason string `json:"reason"`
}
