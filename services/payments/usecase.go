package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// PaymentUC records money movement for bookings. Charges and refunds are
// attempted once; the payment id is the provider idempotency key.
//
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/carpool/services/payments PaymentUC
type PaymentUC interface {
	Initiate(ctx context.Context, bookingID uuid.UUID, amount int64) (*models.Payment, error)
	// Settle charges the payment. A decline is not an error: the payment is
	// returned in status failed.
	Settle(ctx context.Context, paymentID uuid.UUID, amount int64) (*models.Payment, error)
	// RecordOutcome applies a result the provider reported asynchronously.
	RecordOutcome(ctx context.Context, result models.SettlementResult) (*models.Payment, error)
	Refund(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	// ReverseLateCharge returns money the provider took after the payment was
	// voided. The payment stays failed.
	ReverseLateCharge(ctx context.Context, result models.SettlementResult) (*models.Payment, error)
	Fail(ctx context.Context, paymentID uuid.UUID, reason string) (*models.Payment, error)
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	GetByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
}
