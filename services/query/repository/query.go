package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
)

// snapshot is the transaction every read runs in: all statements of one call
// see the same committed state.
var snapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// QueryRepo serves read models from postgres
type QueryRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewQueryRepository creates a new query repository
func NewQueryRepository(cfg *models.Config, db *sqlx.DB) *QueryRepo {
	return &QueryRepo{
		cfg: cfg,
		db:  db,
	}
}

// AvailableTrips lists scheduled trips with free seats departing after
// departingAfter, soonest first
func (r *QueryRepo) AvailableTrips(ctx context.Context, filter models.TripFilter, departingAfter time.Time) ([]*models.AvailableTrip, error) {
	query := `
		SELECT t.id AS trip_id, t.source, t.destination, t.departure_time,
			l.total - l.held - l.confirmed AS seats_left, t.price_per_seat
		FROM trips t
		JOIN seat_ledgers l ON l.trip_id = t.id
		WHERE t.status = $1
			AND t.departure_time > $2
			AND NOT l.frozen
			AND l.total - l.held - l.confirmed > 0
			AND t.source ILIKE $3
			AND t.destination ILIKE $4
		ORDER BY t.departure_time, t.id
	`

	out := []*models.AvailableTrip{}
	err := r.read(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &out, query,
			models.TripStatusScheduled,
			departingAfter,
			likePattern(filter.Source),
			likePattern(filter.Destination),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list available trips: %w", err)
	}
	return out, nil
}

// RiderBookings lists a rider's bookings with their trips, newest first
func (r *QueryRepo) RiderBookings(ctx context.Context, riderID uuid.UUID) ([]*models.RiderBooking, error) {
	query := `
		SELECT b.id AS booking_id, b.trip_id, b.seats, b.seats * b.unit_price AS amount,
			b.status, b.cancel_reason, t.source, t.destination, t.departure_time,
			t.status AS trip_status, b.created_at
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		WHERE b.rider_id = $1
		ORDER BY b.created_at DESC, b.id
	`

	out := []*models.RiderBooking{}
	err := r.read(ctx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &out, query, riderID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rider bookings: %w", err)
	}
	return out, nil
}

// DriverStats aggregates a driver's earnings and trips in one snapshot
func (r *QueryRepo) DriverStats(ctx context.Context, driverID uuid.UUID, dayStart, dayEnd, now time.Time) (*models.DriverStats, error) {
	countsQuery := `
		SELECT
			COUNT(*) AS total_trips,
			COUNT(*) FILTER (WHERE departure_time >= $2 AND departure_time < $3) AS todays_trips
		FROM trips
		WHERE driver_id = $1
	`
	earningsQuery := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		JOIN trips t ON t.id = b.trip_id
		WHERE t.driver_id = $1 AND b.status = $2 AND p.status = $3
	`
	upcomingQuery := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE driver_id = $1 AND departure_time > $2 AND status <> $3
		ORDER BY departure_time, id
	`

	stats := &models.DriverStats{UpcomingTrips: []*models.Trip{}}
	err := r.read(ctx, func(tx *sqlx.Tx) error {
		var counts struct {
			TotalTrips  int `db:"total_trips"`
			TodaysTrips int `db:"todays_trips"`
		}
		if err := tx.GetContext(ctx, &counts, countsQuery, driverID, dayStart, dayEnd); err != nil {
			return fmt.Errorf("count trips: %w", err)
		}
		stats.TotalTrips = counts.TotalTrips
		stats.TodaysTrips = counts.TodaysTrips

		if err := tx.GetContext(ctx, &stats.Earnings, earningsQuery,
			driverID, models.BookingStatusConfirmed, models.PaymentStatusSettled); err != nil {
			return fmt.Errorf("sum earnings: %w", err)
		}

		if err := tx.SelectContext(ctx, &stats.UpcomingTrips, upcomingQuery,
			driverID, now, models.TripStatusCancelled); err != nil {
			return fmt.Errorf("list upcoming trips: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get driver stats: %w", err)
	}
	return stats, nil
}

const tripColumns = `id, driver_id, vehicle_id, source, destination, departure_time, total_seats, price_per_seat, status, created_at, updated_at`

// read runs fn in a read-only repeatable-read transaction. The transaction
// is always rolled back; it never writes.
func (r *QueryRepo) read(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			logger.Warn("Failed to close read snapshot", logger.Err(rbErr))
		}
	}()
	return fn(tx)
}

// likePattern turns a free-text filter into a case-insensitive substring
// pattern. An empty filter matches everything.
func likePattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + escaped + "%"
}
