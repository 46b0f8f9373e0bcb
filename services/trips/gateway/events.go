package gateway

import (
	"context"

	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/eventbus"
	"github.com/piresc/carpool/internal/pkg/models"
)

// TripGW publishes trip lifecycle events
type TripGW struct {
	publisher eventbus.Publisher
}

// NewTripGW creates a trip event gateway
func NewTripGW(publisher eventbus.Publisher) *TripGW {
	return &TripGW{publisher: publisher}
}

// PublishTripCreated publishes trip.created
func (g *TripGW) PublishTripCreated(ctx context.Context, trip *models.Trip) error {
	return g.publisher.Publish(ctx, constants.SubjectTripCreated, models.NewTripEvent(trip))
}

// PublishTripCancelled publishes trip.cancelled
func (g *TripGW) PublishTripCancelled(ctx context.Context, trip *models.Trip) error {
	return g.publisher.Publish(ctx, constants.SubjectTripCancelled, models.NewTripEvent(trip))
}

// PublishTripCompleted publishes trip.completed
func (g *TripGW) PublishTripCompleted(ctx context.Context, trip *models.Trip) error {
	return g.publisher.Publish(ctx, constants.SubjectTripCompleted, models.NewTripEvent(trip))
}
