package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/query"
)

// queryUC implements query.QueryUC
type queryUC struct {
	cfg   *models.Config
	repo  query.QueryRepo
	nowFn func() time.Time
}

// NewQueryUC creates a new query use case
func NewQueryUC(cfg *models.Config, repo query.QueryRepo) (query.QueryUC, error) {
	return &queryUC{
		cfg:   cfg,
		repo:  repo,
		nowFn: time.Now,
	}, nil
}

// AvailableTrips lists bookable trips that have not departed yet
func (uc *queryUC) AvailableTrips(ctx context.Context, filter models.TripFilter) ([]*models.AvailableTrip, error) {
	filter.Source = utils.NormalizePlace(filter.Source)
	filter.Destination = utils.NormalizePlace(filter.Destination)
	return uc.repo.AvailableTrips(ctx, filter, uc.nowFn())
}

// RiderBookings lists a rider's bookings with trip details
func (uc *queryUC) RiderBookings(ctx context.Context, riderID uuid.UUID) ([]*models.RiderBooking, error) {
	return uc.repo.RiderBookings(ctx, riderID)
}

// DriverStats summarises a driver's trips. "Today" is the calendar day of
// the service's local time zone.
func (uc *queryUC) DriverStats(ctx context.Context, driverID uuid.UUID) (*models.DriverStats, error) {
	now := uc.nowFn()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return uc.repo.DriverStats(ctx, driverID, dayStart, dayStart.AddDate(0, 0, 1), now)
}
