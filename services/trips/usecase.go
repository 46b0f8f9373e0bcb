package trips

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// TripUC defines the interface for trip lifecycle business logic
//
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/carpool/services/trips TripUC
type TripUC interface {
	AddVehicle(ctx context.Context, req models.AddVehicleRequest) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, driverID uuid.UUID) ([]*models.Vehicle, error)
	CreateTrip(ctx context.Context, req models.CreateTripRequest) (*models.Trip, error)
	CancelTrip(ctx context.Context, tripID uuid.UUID, driverID uuid.UUID) (*models.TripCancellation, error)
	CompleteTrip(ctx context.Context, tripID uuid.UUID, driverID uuid.UUID) (*models.TripCancellation, error)
	GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error)
	ListDriverTrips(ctx context.Context, driverID uuid.UUID) ([]*models.Trip, error)
}
