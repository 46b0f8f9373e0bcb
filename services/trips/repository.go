package trips

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// TripRepo defines the interface for trip and vehicle data access operations
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/carpool/services/trips TripRepo
type TripRepo interface {
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error)
	ListVehiclesByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Vehicle, error)
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error)
	UpdateTrip(ctx context.Context, trip *models.Trip) error
	ListTripsByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Trip, error)
}
