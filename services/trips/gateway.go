package trips

import (
	"context"

	"github.com/piresc/carpool/internal/pkg/models"
)

// TripGW publishes trip lifecycle events
//
//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/carpool/services/trips TripGW
type TripGW interface {
	PublishTripCreated(ctx context.Context, trip *models.Trip) error
	PublishTripCancelled(ctx context.Context, trip *models.Trip) error
	PublishTripCompleted(ctx context.Context, trip *models.Trip) error
}
