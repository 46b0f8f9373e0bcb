package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusSettled   PaymentStatus = "settled"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// CanTransitionTo encodes the payment state machine: initiated settles or
// fails, and only a settled payment may be refunded.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusInitiated:
		return next == PaymentStatusSettled || next == PaymentStatusFailed
	case PaymentStatusSettled:
		return next == PaymentStatusRefunded
	}
	return false
}

// Payment represents the money owed for one booking
type Payment struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	BookingID     uuid.UUID     `json:"booking_id" db:"booking_id"`
	Amount        int64         `json:"amount" db:"amount"`
	Status        PaymentStatus `json:"status" db:"status"`
	ProviderRef   string        `json:"provider_ref,omitempty" db:"provider_ref"`
	FailureReason string        `json:"failure_reason,omitempty" db:"failure_reason"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// Transition moves the payment to next or returns ErrInvalidTransition.
func (p *Payment) Transition(next PaymentStatus, now time.Time) error {
	if !p.Status.CanTransitionTo(next) {
		return fmt.Errorf("payment %s %s -> %s: %w", p.ID, p.Status, next, ErrInvalidTransition)
	}
	p.Status = next
	p.UpdatedAt = now
	return nil
}

// ChargeRequest asks the payment provider to move money. PaymentID doubles as
// the provider's idempotency key.
type ChargeRequest struct {
	PaymentID uuid.UUID `json:"payment_id"`
	BookingID uuid.UUID `json:"booking_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
}

// RefundRequest asks the payment provider to return a settled charge
type RefundRequest struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	ProviderRef string    `json:"provider_ref"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
}

// ProviderResult is the provider's answer to a charge or refund
type ProviderResult struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
	Reason    string `json:"reason,omitempty"`
}
