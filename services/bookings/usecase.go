package bookings

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// BookingUC drives the booking state machine. All transitions of one booking
// run under its booking lock.
//
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/carpool/services/bookings BookingUC
type BookingUC interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	MakePayment(ctx context.Context, req models.MakePaymentRequest) (*models.Booking, error)
	ConfirmPayment(ctx context.Context, bookingID uuid.UUID, result models.SettlementResult) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actor models.Actor) (*models.Booking, error)
	// CancelForTrip is CancelBooking with the system actor; it also reports
	// whether the booking's payment was refunded.
	CancelForTrip(ctx context.Context, bookingID uuid.UUID) (bool, error)
	ExpireStale(ctx context.Context) (int, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error)
	ListActiveByTrip(ctx context.Context, tripID uuid.UUID) ([]*models.Booking, error)
}
