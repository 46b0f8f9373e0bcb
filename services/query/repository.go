package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// QueryRepo reads consistent snapshots. Each call observes a single point in
// time across trips, ledgers, bookings and payments.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/carpool/services/query QueryRepo
type QueryRepo interface {
	AvailableTrips(ctx context.Context, filter models.TripFilter, departingAfter time.Time) ([]*models.AvailableTrip, error)
	RiderBookings(ctx context.Context, riderID uuid.UUID) ([]*models.RiderBooking, error)
	// DriverStats counts trips departing in [dayStart, dayEnd) as today's and
	// trips departing after now as upcoming.
	DriverStats(ctx context.Context, driverID uuid.UUID, dayStart, dayEnd, now time.Time) (*models.DriverStats, error)
}
