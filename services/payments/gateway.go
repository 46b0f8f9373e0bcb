package payments

import (
	"context"

	"github.com/piresc/carpool/internal/pkg/models"
)

// PaymentProvider is the external capability that moves money
//
//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks github.com/piresc/carpool/services/payments PaymentProvider
type PaymentProvider interface {
	Charge(ctx context.Context, req models.ChargeRequest) (models.ProviderResult, error)
	Refund(ctx context.Context, req models.RefundRequest) (models.ProviderResult, error)
}

// PaymentGW publishes payment events
//
//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/carpool/services/payments PaymentGW
type PaymentGW interface {
	PublishPaymentSettled(ctx context.Context, payment *models.Payment) error
	PublishPaymentFailed(ctx context.Context, payment *models.Payment) error
	PublishPaymentRefunded(ctx context.Context, payment *models.Payment) error
}
