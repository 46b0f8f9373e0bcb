package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeatLedger is the per-trip seat account. All arithmetic goes through its
// methods; a result breaking 0 <= held, 0 <= confirmed, held+confirmed <= total
// panics because the overbooking guarantee is already lost at that point.
type SeatLedger struct {
	TripID    uuid.UUID `json:"trip_id" db:"trip_id"`
	Total     int       `json:"total" db:"total"`
	Held      int       `json:"held" db:"held"`
	Confirmed int       `json:"confirmed" db:"confirmed"`
	Frozen    bool      `json:"frozen" db:"frozen"`
	Version   int64     `json:"version" db:"version"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewSeatLedger seeds an empty ledger for a trip.
func NewSeatLedger(tripID uuid.UUID, total int, now time.Time) *SeatLedger {
	l := &SeatLedger{TripID: tripID, Total: total, UpdatedAt: now}
	l.mustBeConsistent("seed")
	return l
}

// Available returns the seats neither held nor confirmed.
func (l *SeatLedger) Available() int {
	return l.Total - l.Held - l.Confirmed
}

// Hold reserves seats provisionally. It never partially succeeds.
func (l *SeatLedger) Hold(seats int) error {
	if seats <= 0 {
		return fmt.Errorf("hold %d seats: %w", seats, ErrInvalidSeats)
	}
	if l.Frozen {
		return fmt.Errorf("ledger %s is frozen: %w", l.TripID, ErrTripNotScheduled)
	}
	if l.Confirmed+l.Held+seats > l.Total {
		return fmt.Errorf("requested %d, available %d: %w", seats, l.Available(), ErrInsufficientSeats)
	}
	l.Held += seats
	l.mustBeConsistent("hold")
	return nil
}

// Confirm moves seats from held to confirmed.
func (l *SeatLedger) Confirm(seats int) {
	l.Held -= seats
	l.Confirmed += seats
	l.mustBeConsistent("confirm")
}

// Release drops held seats.
func (l *SeatLedger) Release(seats int) {
	l.Held -= seats
	l.mustBeConsistent("release")
}

// ReleaseConfirmed drops confirmed seats after a paid booking is cancelled.
func (l *SeatLedger) ReleaseConfirmed(seats int) {
	l.Confirmed -= seats
	l.mustBeConsistent("release confirmed")
}

// Freeze stops new holds. Existing holds may still resolve.
func (l *SeatLedger) Freeze() {
	l.Frozen = true
}

func (l *SeatLedger) mustBeConsistent(op string) {
	if l.Held < 0 || l.Confirmed < 0 || l.Total < 0 || l.Held+l.Confirmed > l.Total {
		panic(fmt.Sprintf("seat ledger %s invariant broken after %s: total=%d held=%d confirmed=%d",
			l.TripID, op, l.Total, l.Held, l.Confirmed))
	}
}

// HoldStatus is the lifecycle of a hold token
type HoldStatus string

const (
	HoldStatusActive    HoldStatus = "active"
	HoldStatusConfirmed HoldStatus = "confirmed"
	HoldStatusReleased  HoldStatus = "released"
)

// SeatHold is the single-use token issued by a successful hold
type SeatHold struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	TripID     uuid.UUID  `json:"trip_id" db:"trip_id"`
	BookingID  uuid.UUID  `json:"booking_id" db:"booking_id"`
	Seats      int        `json:"seats" db:"seats"`
	Status     HoldStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
}

// Resolve moves the token from one status to the next. Only active tokens
// confirm or release; only confirmed tokens may later be released.
func (h *SeatHold) Resolve(next HoldStatus, now time.Time) error {
	legal := (h.Status == HoldStatusActive && (next == HoldStatusConfirmed || next == HoldStatusReleased)) ||
		(h.Status == HoldStatusConfirmed && next == HoldStatusReleased)
	if !legal {
		return fmt.Errorf("hold %s is %s, cannot become %s: %w", h.ID, h.Status, next, ErrInvalidToken)
	}
	h.Status = next
	h.ResolvedAt = &now
	return nil
}
