package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// QueryUC serves read-only views over trips, bookings and payments
//
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/carpool/services/query QueryUC
type QueryUC interface {
	AvailableTrips(ctx context.Context, filter models.TripFilter) ([]*models.AvailableTrip, error)
	RiderBookings(ctx context.Context, riderID uuid.UUID) ([]*models.RiderBooking, error)
	DriverStats(ctx context.Context, driverID uuid.UUID) (*models.DriverStats, error)
}
