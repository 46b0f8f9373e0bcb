package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "pending_payment"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusCancelled      BookingStatus = "cancelled"
	BookingStatusExpired        BookingStatus = "expired"
)

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusExpired
}

// CanTransitionTo encodes the booking state machine.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPendingPayment:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled || next == BookingStatusExpired
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	}
	return false
}

// CancelReason explains why a booking left the active states
type CancelReason string

const (
	CancelReasonNone            CancelReason = ""
	CancelReasonRiderCancelled  CancelReason = "rider_cancelled"
	CancelReasonDriverCancelled CancelReason = "driver_cancelled"
	CancelReasonTripCancelled   CancelReason = "trip_cancelled"
	CancelReasonPaymentFailed   CancelReason = "payment_failed"
	CancelReasonHoldExpired     CancelReason = "hold_expired"
	// the booking could not be fully created and was rolled back
	CancelReasonCreateFailed CancelReason = "create_failed"
)

// Booking is a rider's claim on seats of a trip
type Booking struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	TripID       uuid.UUID     `json:"trip_id" db:"trip_id"`
	RiderID      uuid.UUID     `json:"rider_id" db:"rider_id"`
	Seats        int           `json:"seats" db:"seats"`
	UnitPrice    int64         `json:"unit_price" db:"unit_price"`
	HoldID       uuid.UUID     `json:"hold_id" db:"hold_id"`
	Status       BookingStatus `json:"status" db:"status"`
	CancelReason CancelReason  `json:"cancel_reason,omitempty" db:"cancel_reason"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// Amount is the price the rider owes, fixed by the snapshot taken at creation.
func (b *Booking) Amount() int64 {
	return int64(b.Seats) * b.UnitPrice
}

// Transition moves the booking to next, recording reason for cancellations
// and expiry.
func (b *Booking) Transition(next BookingStatus, reason CancelReason, now time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("booking %s %s -> %s: %w", b.ID, b.Status, next, ErrInvalidTransition)
	}
	b.Status = next
	if next.IsTerminal() {
		b.CancelReason = reason
	}
	b.UpdatedAt = now
	return nil
}

// CreateBookingRequest asks for seats on a trip
type CreateBookingRequest struct {
	TripID  uuid.UUID `json:"trip_id"`
	RiderID uuid.UUID `json:"-"`
	Seats   int       `json:"seats"`
}

// MakePaymentRequest is a rider paying for a pending booking
type MakePaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id"`
	RiderID   uuid.UUID `json:"-"`
	Amount    int64     `json:"amount"`
}

// SettlementResult is the definite outcome of a payment attempt
type SettlementResult struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	Settled     bool      `json:"settled"`
	Reason      string    `json:"reason,omitempty"`
	ProviderRef string    `json:"provider_ref,omitempty"`
}

// ProviderResultEvent is published by the payment provider when a charge
// settles out of band.
type ProviderResultEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	PaymentID   uuid.UUID `json:"payment_id"`
	Settled     bool      `json:"settled"`
	Reason      string    `json:"reason,omitempty"`
	ProviderRef string    `json:"provider_ref,omitempty"`
}
