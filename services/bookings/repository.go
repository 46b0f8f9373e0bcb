package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// BookingRepo defines the interface for booking data access operations
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/carpool/services/bookings BookingRepo
type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error)
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	ListActiveBookingsByTrip(ctx context.Context, tripID uuid.UUID) ([]*models.Booking, error)
	ListStalePendingBookings(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Booking, error)
}

// TripReader looks up the trip a booking is made against
//
//go:generate mockgen -destination=mocks/mock_trip_reader.go -package=mocks github.com/piresc/carpool/services/bookings TripReader
type TripReader interface {
	GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error)
}
