package gateway

import (
	"context"

	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/eventbus"
	"github.com/piresc/carpool/internal/pkg/models"
)

// BookingGW publishes booking transitions on the event bus
type BookingGW struct {
	publisher eventbus.Publisher
}

// NewBookingGW creates a booking event gateway
func NewBookingGW(publisher eventbus.Publisher) *BookingGW {
	return &BookingGW{publisher: publisher}
}

// PublishBookingCreated publishes booking.created
func (g *BookingGW) PublishBookingCreated(ctx context.Context, booking *models.Booking) error {
	return g.publish(ctx, constants.SubjectBookingCreated, booking)
}

// PublishBookingConfirmed publishes booking.confirmed
func (g *BookingGW) PublishBookingConfirmed(ctx context.Context, booking *models.Booking) error {
	return g.publish(ctx, constants.SubjectBookingConfirmed, booking)
}

// PublishBookingCancelled publishes booking.cancelled
func (g *BookingGW) PublishBookingCancelled(ctx context.Context, booking *models.Booking) error {
	return g.publish(ctx, constants.SubjectBookingCancelled, booking)
}

// PublishBookingExpired publishes booking.expired
func (g *BookingGW) PublishBookingExpired(ctx context.Context, booking *models.Booking) error {
	return g.publish(ctx, constants.SubjectBookingExpired, booking)
}

func (g *BookingGW) publish(ctx context.Context, subject string, booking *models.Booking) error {
	return g.publisher.Publish(ctx, subject, models.NewBookingEvent(booking))
}
