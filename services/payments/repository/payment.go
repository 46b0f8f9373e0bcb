package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/carpool/internal/pkg/models"
)

const paymentColumns = `id, booking_id, amount, status, provider_ref, failure_reason, created_at, updated_at`

// PaymentRepo stores payments in postgres
type PaymentRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(cfg *models.Config, db *sqlx.DB) *PaymentRepo {
	return &PaymentRepo{
		cfg: cfg,
		db:  db,
	}
}

// CreatePayment inserts a payment. The unique booking_id index keeps one
// payment per booking.
func (r *PaymentRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		payment.Status,
		payment.ProviderRef,
		payment.FailureReason,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID
func (r *PaymentRepo) GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, paymentID)
}

// GetPaymentByBooking retrieves the payment of a booking
func (r *PaymentRepo) GetPaymentByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE booking_id = $1`, bookingID)
}

// UpdatePayment writes the mutable fields of a payment
func (r *PaymentRepo) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		UPDATE payments
		SET status = $1, provider_ref = $2, failure_reason = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.Status,
		payment.ProviderRef,
		payment.FailureReason,
		payment.UpdatedAt,
		payment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("payment %s: %w", payment.ID, models.ErrNotFound)
	}
	return nil
}

func (r *PaymentRepo) getOne(ctx context.Context, query string, arg interface{}) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("payment %v: %w", arg, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}
