package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// PaymentRepo defines the interface for payment data access operations
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/carpool/services/payments PaymentRepo
type PaymentRepo interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	GetPaymentByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
	UpdatePayment(ctx context.Context, payment *models.Payment) error
}
