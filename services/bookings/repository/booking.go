package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/carpool/internal/pkg/models"
)

const bookingColumns = `id, trip_id, rider_id, seats, unit_price, hold_id, status, cancel_reason, created_at, updated_at`

// activeStatuses are the booking states that still hold seats
var activeStatuses = []string{
	string(models.BookingStatusPendingPayment),
	string(models.BookingStatusConfirmed),
}

// BookingRepo stores bookings in postgres
type BookingRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(cfg *models.Config, db *sqlx.DB) *BookingRepo {
	return &BookingRepo{
		cfg: cfg,
		db:  db,
	}
}

// CreateBooking inserts a new booking
func (r *BookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.TripID,
		booking.RiderID,
		booking.Seats,
		booking.UnitPrice,
		booking.HoldID,
		booking.Status,
		booking.CancelReason,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetBooking retrieves a booking by ID
func (r *BookingRepo) GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.GetContext(ctx, &booking, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// UpdateBooking writes a booking's status change
func (r *BookingRepo) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, cancel_reason = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, booking.Status, booking.CancelReason, booking.UpdatedAt, booking.ID)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking %s: %w", booking.ID, models.ErrNotFound)
	}
	return nil
}

// ListActiveBookingsByTrip returns pending and confirmed bookings of a trip
func (r *BookingRepo) ListActiveBookingsByTrip(ctx context.Context, tripID uuid.UUID) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE trip_id = $1 AND status = ANY($2)
		ORDER BY created_at, id
	`

	var out []*models.Booking
	if err := r.db.SelectContext(ctx, &out, query, tripID, pq.Array(activeStatuses)); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return out, nil
}

// ListStalePendingBookings returns up to limit pending bookings created
// before createdBefore, oldest first
func (r *BookingRepo) ListStalePendingBookings(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at, id
		LIMIT $3
	`

	var out []*models.Booking
	if err := r.db.SelectContext(ctx, &out, query, models.BookingStatusPendingPayment, createdBefore, limit); err != nil {
		return nil, fmt.Errorf("failed to list stale bookings: %w", err)
	}
	return out, nil
}
