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

const (
	vehicleColumns = `id, driver_id, registration, model, capacity, created_at`
	tripColumns    = `id, driver_id, vehicle_id, source, destination, departure_time, total_seats, price_per_seat, status, created_at, updated_at`
)

// TripRepo stores trips and vehicles in postgres
type TripRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(cfg *models.Config, db *sqlx.DB) *TripRepo {
	return &TripRepo{
		cfg: cfg,
		db:  db,
	}
}

// CreateVehicle inserts a new vehicle
func (r *TripRepo) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.DriverID,
		vehicle.Registration,
		vehicle.Model,
		vehicle.Capacity,
		vehicle.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// GetVehicle retrieves a vehicle by ID
func (r *TripRepo) GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.GetContext(ctx, &vehicle, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vehicle %s: %w", vehicleID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

// ListVehiclesByDriver returns the vehicles of a driver, oldest first
func (r *TripRepo) ListVehiclesByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE driver_id = $1 ORDER BY created_at, id`

	vehicles := []*models.Vehicle{}
	if err := r.db.SelectContext(ctx, &vehicles, query, driverID); err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

// CreateTrip inserts a new trip
func (r *TripRepo) CreateTrip(ctx context.Context, trip *models.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		trip.ID,
		trip.DriverID,
		trip.VehicleID,
		trip.Source,
		trip.Destination,
		trip.DepartureTime,
		trip.TotalSeats,
		trip.PricePerSeat,
		trip.Status,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID
func (r *TripRepo) GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.GetContext(ctx, &trip, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("trip %s: %w", tripID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

// UpdateTrip writes a trip's status change
func (r *TripRepo) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	query := `
		UPDATE trips
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, trip.Status, trip.UpdatedAt, trip.ID)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("trip %s: %w", trip.ID, models.ErrNotFound)
	}
	return nil
}

// ListTripsByDriver returns all trips of a driver, soonest departure first
func (r *TripRepo) ListTripsByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE driver_id = $1 ORDER BY departure_time, id`

	trips := []*models.Trip{}
	if err := r.db.SelectContext(ctx, &trips, query, driverID); err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, nil
}
