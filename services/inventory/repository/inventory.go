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
	ledgerColumns = `trip_id, total, held, confirmed, frozen, version, updated_at`
	holdColumns   = `id, trip_id, booking_id, seats, status, created_at, resolved_at`
)

// execer is satisfied by both *sqlx.DB and *sqlx.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// InventoryRepo stores seat ledgers and hold tokens in postgres
type InventoryRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(cfg *models.Config, db *sqlx.DB) *InventoryRepo {
	return &InventoryRepo{
		cfg: cfg,
		db:  db,
	}
}

// CreateLedger inserts the ledger of a new trip
func (r *InventoryRepo) CreateLedger(ctx context.Context, ledger *models.SeatLedger) error {
	query := `
		INSERT INTO seat_ledgers (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		ledger.TripID,
		ledger.Total,
		ledger.Held,
		ledger.Confirmed,
		ledger.Frozen,
		ledger.Version,
		ledger.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}
	return nil
}

// GetLedger retrieves the ledger of a trip
func (r *InventoryRepo) GetLedger(ctx context.Context, tripID uuid.UUID) (*models.SeatLedger, error) {
	var ledger models.SeatLedger
	err := r.db.GetContext(ctx, &ledger, `SELECT `+ledgerColumns+` FROM seat_ledgers WHERE trip_id = $1`, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ledger for trip %s: %w", tripID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	return &ledger, nil
}

// UpdateLedger writes the ledger if its stored version is still ledger.Version
func (r *InventoryRepo) UpdateLedger(ctx context.Context, ledger *models.SeatLedger) error {
	return updateLedger(ctx, r.db, ledger)
}

// InsertHold stores a new hold token and the ledger that granted it in one
// transaction
func (r *InventoryRepo) InsertHold(ctx context.Context, ledger *models.SeatLedger, hold *models.SeatHold) error {
	query := `
		INSERT INTO seat_holds (` + holdColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	return r.inTx(ctx, ledger, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			hold.ID,
			hold.TripID,
			hold.BookingID,
			hold.Seats,
			hold.Status,
			hold.CreatedAt,
			hold.ResolvedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert hold: %w", err)
		}
		return nil
	})
}

// ResolveHold stores a token's new status and the ledger change in one
// transaction
func (r *InventoryRepo) ResolveHold(ctx context.Context, ledger *models.SeatLedger, hold *models.SeatHold) error {
	query := `
		UPDATE seat_holds
		SET status = $1, resolved_at = $2
		WHERE id = $3
	`

	return r.inTx(ctx, ledger, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, hold.Status, hold.ResolvedAt, hold.ID)
		if err != nil {
			return fmt.Errorf("failed to update hold: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("hold %s: %w", hold.ID, models.ErrNotFound)
		}
		return nil
	})
}

// GetHold retrieves a hold token by ID
func (r *InventoryRepo) GetHold(ctx context.Context, holdID uuid.UUID) (*models.SeatHold, error) {
	var hold models.SeatHold
	err := r.db.GetContext(ctx, &hold, `SELECT `+holdColumns+` FROM seat_holds WHERE id = $1`, holdID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("hold %s: %w", holdID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get hold: %w", err)
	}
	return &hold, nil
}

// inTx writes the ledger and runs fn in one transaction. The ledger's
// version is only advanced once the transaction commits.
func (r *InventoryRepo) inTx(ctx context.Context, ledger *models.SeatLedger, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	staged := *ledger
	if err := updateLedger(ctx, tx, &staged); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	ledger.Version = staged.Version
	return nil
}

func updateLedger(ctx context.Context, db execer, ledger *models.SeatLedger) error {
	query := `
		UPDATE seat_ledgers
		SET held = $1, confirmed = $2, frozen = $3, version = version + 1, updated_at = $4
		WHERE trip_id = $5 AND version = $6
	`

	result, err := db.ExecContext(ctx, query,
		ledger.Held,
		ledger.Confirmed,
		ledger.Frozen,
		ledger.UpdatedAt,
		ledger.TripID,
		ledger.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("ledger for trip %s at version %d: %w", ledger.TripID, ledger.Version, models.ErrConcurrentUpdate)
	}
	ledger.Version++
	return nil
}
