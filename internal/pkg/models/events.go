package models

import (
	"time"

	"github.com/google/uuid"
)

// TripEvent is published on trip lifecycle changes
type TripEvent struct {
	TripID     uuid.UUID  `json:"trip_id"`
	DriverID   uuid.UUID  `json:"driver_id"`
	Status     TripStatus `json:"status"`
	TotalSeats int        `json:"total_seats"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// BookingEvent is published on every booking transition
type BookingEvent struct {
	BookingID    uuid.UUID     `json:"booking_id"`
	TripID       uuid.UUID     `json:"trip_id"`
	RiderID      uuid.UUID     `json:"rider_id"`
	Seats        int           `json:"seats"`
	Amount       int64         `json:"amount"`
	Status       BookingStatus `json:"status"`
	CancelReason CancelReason  `json:"cancel_reason,omitempty"`
	OccurredAt   time.Time     `json:"occurred_at"`
}

// PaymentEvent is published when a payment reaches a definite state
type PaymentEvent struct {
	PaymentID  uuid.UUID     `json:"payment_id"`
	BookingID  uuid.UUID     `json:"booking_id"`
	Amount     int64         `json:"amount"`
	Status     PaymentStatus `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewTripEvent snapshots a trip for publishing.
func NewTripEvent(t *Trip) TripEvent {
	return TripEvent{TripID: t.ID, DriverID: t.DriverID, Status: t.Status, TotalSeats: t.TotalSeats, OccurredAt: t.UpdatedAt}
}

// NewBookingEvent snapshots a booking for publishing.
func NewBookingEvent(b *Booking) BookingEvent {
	return BookingEvent{
		BookingID:    b.ID,
		TripID:       b.TripID,
		RiderID:      b.RiderID,
		Seats:        b.Seats,
		Amount:       b.Amount(),
		Status:       b.Status,
		CancelReason: b.CancelReason,
		OccurredAt:   b.UpdatedAt,
	}
}

// NewPaymentEvent snapshots a payment for publishing.
func NewPaymentEvent(p *Payment) PaymentEvent {
	return PaymentEvent{
		PaymentID:  p.ID,
		BookingID:  p.BookingID,
		Amount:     p.Amount,
		Status:     p.Status,
		Reason:     p.FailureReason,
		OccurredAt: p.UpdatedAt,
	}
}
