package memstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// CreatePayment stores a payment. A booking has at most one payment.
func (s *Store) CreatePayment(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.paymentByBooking[payment.BookingID]; ok {
		return fmt.Errorf("payment for booking %s already exists", payment.BookingID)
	}
	s.payments[payment.ID] = *payment
	s.paymentByBooking[payment.BookingID] = payment.ID
	return nil
}

// GetPayment returns a copy of a payment
func (s *Store) GetPayment(_ context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", paymentID, models.ErrNotFound)
	}
	return &p, nil
}

// GetPaymentByBooking returns the payment of a booking
func (s *Store) GetPaymentByBooking(_ context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.paymentByBooking[bookingID]
	if !ok {
		return nil, fmt.Errorf("payment for booking %s: %w", bookingID, models.ErrNotFound)
	}
	p := s.payments[id]
	return &p, nil
}

// UpdatePayment overwrites a payment's mutable fields
func (s *Store) UpdatePayment(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[payment.ID]; !ok {
		return fmt.Errorf("payment %s: %w", payment.ID, models.ErrNotFound)
	}
	s.payments[payment.ID] = *payment
	return nil
}
