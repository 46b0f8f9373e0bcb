package bookings

import (
	"context"

	"github.com/piresc/carpool/internal/pkg/models"
)

// BookingGW publishes booking lifecycle events
//
//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/carpool/services/bookings BookingGW
type BookingGW interface {
	PublishBookingCreated(ctx context.Context, booking *models.Booking) error
	PublishBookingConfirmed(ctx context.Context, booking *models.Booking) error
	PublishBookingCancelled(ctx context.Context, booking *models.Booking) error
	PublishBookingExpired(ctx context.Context, booking *models.Booking) error
}
