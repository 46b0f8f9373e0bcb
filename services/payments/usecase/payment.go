package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/payments"
)

// paymentUC implements payments.PaymentUC. Callers serialize work on one
// payment through the booking lock.
type paymentUC struct {
	cfg       *models.Config
	repo      payments.PaymentRepo
	provider  payments.PaymentProvider
	paymentGW payments.PaymentGW
	nowFn     func() time.Time
}

// NewPaymentUC creates a new payment use case
func NewPaymentUC(
	cfg *models.Config,
	repo payments.PaymentRepo,
	provider payments.PaymentProvider,
	paymentGW payments.PaymentGW,
) (payments.PaymentUC, error) {
	if provider == nil {
		return nil, errors.New("payment provider is required")
	}
	return &paymentUC{
		cfg:       cfg,
		repo:      repo,
		provider:  provider,
		paymentGW: paymentGW,
		nowFn:     time.Now,
	}, nil
}

// Initiate records the amount owed for a booking
func (uc *paymentUC) Initiate(ctx context.Context, bookingID uuid.UUID, amount int64) (*models.Payment, error) {
	if amount < 0 {
		return nil, fmt.Errorf("payment amount %d: %w", amount, models.ErrInvalidInput)
	}

	now := uc.nowFn()
	payment := &models.Payment{
		ID:        uuid.New(),
		BookingID: bookingID,
		Amount:    amount,
		Status:    models.PaymentStatusInitiated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	logger.DebugCtx(ctx, "Payment initiated",
		logger.UUID("payment_id", payment.ID),
		logger.UUID("booking_id", bookingID),
		logger.Int64("amount", amount))
	return payment, nil
}

// Settle charges the payment once. A settled payment is returned untouched so
// a repeated call never charges twice.
func (uc *paymentUC) Settle(ctx context.Context, paymentID uuid.UUID, amount int64) (*models.Payment, error) {
	payment, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentStatusSettled {
		return payment, nil
	}
	if payment.Status != models.PaymentStatusInitiated {
		return payment, fmt.Errorf("payment %s is %s: %w", paymentID, payment.Status, models.ErrInvalidTransition)
	}
	if amount != payment.Amount {
		return payment, fmt.Errorf("paid %d, owed %d: %w", amount, payment.Amount, models.ErrAmountMismatch)
	}

	result, err := uc.provider.Charge(ctx, models.ChargeRequest{
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		Amount:    payment.Amount,
		Currency:  uc.currency(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Payment provider charge failed",
			logger.UUID("payment_id", paymentID),
			logger.Err(err))
		return payment, fmt.Errorf("charge payment %s: %v: %w", paymentID, err, models.ErrProviderFailure)
	}

	return uc.apply(ctx, payment, models.SettlementResult{
		PaymentID:   payment.ID,
		Settled:     result.Success,
		Reason:      result.Reason,
		ProviderRef: result.Reference,
	})
}

// RecordOutcome stores a result the provider reported asynchronously. A
// duplicate of the recorded outcome is accepted as is.
func (uc *paymentUC) RecordOutcome(ctx context.Context, result models.SettlementResult) (*models.Payment, error) {
	payment, err := uc.repo.GetPayment(ctx, result.PaymentID)
	if err != nil {
		return nil, err
	}

	switch {
	case result.Settled && payment.Status == models.PaymentStatusSettled,
		!result.Settled && payment.Status == models.PaymentStatusFailed:
		return payment, nil
	case payment.Status != models.PaymentStatusInitiated:
		return payment, fmt.Errorf("payment %s is %s: %w", payment.ID, payment.Status, models.ErrInvalidTransition)
	}

	return uc.apply(ctx, payment, result)
}

// Refund returns a settled charge. Refunding a refunded payment is a no-op.
func (uc *paymentUC) Refund(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	switch payment.Status {
	case models.PaymentStatusRefunded:
		return payment, nil
	case models.PaymentStatusSettled:
	default:
		return payment, fmt.Errorf("payment %s is %s: %w", paymentID, payment.Status, models.ErrInvalidTransition)
	}

	result, err := uc.provider.Refund(ctx, models.RefundRequest{
		PaymentID:   payment.ID,
		ProviderRef: payment.ProviderRef,
		Amount:      payment.Amount,
		Currency:    uc.currency(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Payment provider refund failed",
			logger.UUID("payment_id", paymentID),
			logger.Err(err))
		return payment, fmt.Errorf("refund payment %s: %v: %w", paymentID, err, models.ErrRefundFailed)
	}
	if !result.Success {
		return payment, fmt.Errorf("refund payment %s rejected: %s: %w", paymentID, result.Reason, models.ErrRefundFailed)
	}

	if err := payment.Transition(models.PaymentStatusRefunded, uc.nowFn()); err != nil {
		return payment, err
	}
	if err := uc.repo.UpdatePayment(ctx, payment); err != nil {
		// the provider already returned the money; surface it so the caller retries
		return payment, fmt.Errorf("failed to record refund: %v: %w", err, models.ErrRefundFailed)
	}

	logger.InfoCtx(ctx, "Payment refunded",
		logger.UUID("payment_id", payment.ID),
		logger.UUID("booking_id", payment.BookingID),
		logger.Int64("amount", payment.Amount))
	uc.publish(ctx, payment, uc.paymentGW.PublishPaymentRefunded)
	return payment, nil
}

// ReverseLateCharge refunds a charge the provider reported after the payment
// was voided, e.g. a settlement that arrived once the hold had expired. The
// reversed charge's reference is recorded, so a redelivered result is a no-op.
func (uc *paymentUC) ReverseLateCharge(ctx context.Context, result models.SettlementResult) (*models.Payment, error) {
	payment, err := uc.repo.GetPayment(ctx, result.PaymentID)
	if err != nil {
		return nil, err
	}
	if !result.Settled {
		return payment, fmt.Errorf("result for payment %s is not a charge: %w", payment.ID, models.ErrInvalidInput)
	}

	switch payment.Status {
	case models.PaymentStatusRefunded:
		return payment, nil
	case models.PaymentStatusFailed:
		if payment.ProviderRef != "" && payment.ProviderRef == result.ProviderRef {
			return payment, nil
		}
	case models.PaymentStatusInitiated:
	default:
		return payment, fmt.Errorf("payment %s is %s: %w", payment.ID, payment.Status, models.ErrInvalidTransition)
	}

	refund, err := uc.provider.Refund(ctx, models.RefundRequest{
		PaymentID:   payment.ID,
		ProviderRef: result.ProviderRef,
		Amount:      payment.Amount,
		Currency:    uc.currency(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Payment provider refund of late charge failed",
			logger.UUID("payment_id", payment.ID),
			logger.Err(err))
		return payment, fmt.Errorf("reverse late charge %s: %v: %w", payment.ID, err, models.ErrRefundFailed)
	}
	if !refund.Success {
		return payment, fmt.Errorf("reverse late charge %s rejected: %s: %w", payment.ID, refund.Reason, models.ErrRefundFailed)
	}

	if payment.Status == models.PaymentStatusInitiated {
		if err := payment.Transition(models.PaymentStatusFailed, uc.nowFn()); err != nil {
			return payment, err
		}
	}
	payment.ProviderRef = result.ProviderRef
	payment.FailureReason = "late charge reversed"
	payment.UpdatedAt = uc.nowFn()
	if err := uc.repo.UpdatePayment(ctx, payment); err != nil {
		return payment, fmt.Errorf("failed to record late charge reversal: %v: %w", err, models.ErrRefundFailed)
	}

	logger.WarnCtx(ctx, "Late charge reversed",
		logger.UUID("payment_id", payment.ID),
		logger.UUID("booking_id", payment.BookingID),
		logger.String("provider_ref", result.ProviderRef),
		logger.Int64("amount", payment.Amount))
	uc.publish(ctx, payment, uc.paymentGW.PublishPaymentRefunded)
	return payment, nil
}

// Fail marks an initiated payment as failed without contacting the provider
func (uc *paymentUC) Fail(ctx context.Context, paymentID uuid.UUID, reason string) (*models.Payment, error) {
	payment, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == models.PaymentStatusFailed {
		return payment, nil
	}

	return uc.apply(ctx, payment, models.SettlementResult{PaymentID: paymentID, Settled: false, Reason: reason})
}

// GetPayment returns a payment by id
func (uc *paymentUC) GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	return uc.repo.GetPayment(ctx, paymentID)
}

// GetByBooking returns the payment of a booking
func (uc *paymentUC) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	return uc.repo.GetPaymentByBooking(ctx, bookingID)
}

func (uc *paymentUC) apply(ctx context.Context, payment *models.Payment, result models.SettlementResult) (*models.Payment, error) {
	next := models.PaymentStatusFailed
	if result.Settled {
		next = models.PaymentStatusSettled
	}
	if err := payment.Transition(next, uc.nowFn()); err != nil {
		return payment, err
	}
	if result.ProviderRef != "" {
		payment.ProviderRef = result.ProviderRef
	}
	if !result.Settled {
		payment.FailureReason = result.Reason
	}

	if err := uc.repo.UpdatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	if result.Settled {
		logger.InfoCtx(ctx, "Payment settled",
			logger.UUID("payment_id", payment.ID),
			logger.UUID("booking_id", payment.BookingID),
			logger.Int64("amount", payment.Amount))
		uc.publish(ctx, payment, uc.paymentGW.PublishPaymentSettled)
	} else {
		logger.InfoCtx(ctx, "Payment failed",
			logger.UUID("payment_id", payment.ID),
			logger.UUID("booking_id", payment.BookingID),
			logger.String("reason", payment.FailureReason))
		uc.publish(ctx, payment, uc.paymentGW.PublishPaymentFailed)
	}
	return payment, nil
}

// publish never fails the operation; the state change is already stored
func (uc *paymentUC) publish(ctx context.Context, payment *models.Payment, fn func(context.Context, *models.Payment) error) {
	if err := fn(ctx, payment); err != nil {
		logger.WarnCtx(ctx, "Failed to publish payment event",
			logger.UUID("payment_id", payment.ID),
			logger.String("status", string(payment.Status)),
			logger.Err(err))
	}
}

func (uc *paymentUC) currency() string {
	if uc.cfg == nil || uc.cfg.Payment.Currency == "" {
		return "USD"
	}
	return uc.cfg.Payment.Currency
}
