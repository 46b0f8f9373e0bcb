package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// CreateBooking stores a new booking
func (s *Store) CreateBooking(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; ok {
		return fmt.Errorf("booking %s already exists", booking.ID)
	}
	s.bookings[booking.ID] = *booking
	return nil
}

// GetBooking returns a copy of a booking
func (s *Store) GetBooking(_ context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
	}
	return &b, nil
}

// UpdateBooking overwrites a booking's mutable fields
func (s *Store) UpdateBooking(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; !ok {
		return fmt.Errorf("booking %s: %w", booking.ID, models.ErrNotFound)
	}
	s.bookings[booking.ID] = *booking
	return nil
}

// ListActiveBookingsByTrip returns pending and confirmed bookings of a trip
func (s *Store) ListActiveBookingsByTrip(_ context.Context, tripID uuid.UUID) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Booking
	for _, b := range s.bookings {
		if b.TripID == tripID && !b.Status.IsTerminal() {
			b := b
			out = append(out, &b)
		}
	}
	sortBookings(out)
	return out, nil
}

// ListStalePendingBookings returns up to limit pending bookings created
// before createdBefore, oldest first
func (s *Store) ListStalePendingBookings(_ context.Context, createdBefore time.Time, limit int) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Booking
	for _, b := range s.bookings {
		if b.Status == models.BookingStatusPendingPayment && b.CreatedAt.Before(createdBefore) {
			b := b
			out = append(out, &b)
		}
	}
	sortBookings(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortBookings(bs []*models.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].CreatedAt.Equal(bs[j].CreatedAt) {
			return bs[i].ID.String() < bs[j].ID.String()
		}
		return bs[i].CreatedAt.Before(bs[j].CreatedAt)
	})
}
