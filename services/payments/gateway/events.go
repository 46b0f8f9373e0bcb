package gateway

import (
	"context"

	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/eventbus"
	"github.com/piresc/carpool/internal/pkg/models"
)

// PaymentGW publishes payment events on the event bus
type PaymentGW struct {
	publisher eventbus.Publisher
}

// NewPaymentGW creates a payment event gateway
func NewPaymentGW(publisher eventbus.Publisher) *PaymentGW {
	return &PaymentGW{publisher: publisher}
}

// PublishPaymentSettled publishes payment.settled
func (g *PaymentGW) PublishPaymentSettled(ctx context.Context, payment *models.Payment) error {
	return g.publisher.Publish(ctx, constants.SubjectPaymentSettled, models.NewPaymentEvent(payment))
}

// PublishPaymentFailed publishes payment.failed
func (g *PaymentGW) PublishPaymentFailed(ctx context.Context, payment *models.Payment) error {
	return g.publisher.Publish(ctx, constants.SubjectPaymentFailed, models.NewPaymentEvent(payment))
}

// PublishPaymentRefunded publishes payment.refunded
func (g *PaymentGW) PublishPaymentRefunded(ctx context.Context, payment *models.Payment) error {
	return g.publisher.Publish(ctx, constants.SubjectPaymentRefunded, models.NewPaymentEvent(payment))
}
