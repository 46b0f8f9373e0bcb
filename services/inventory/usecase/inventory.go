package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/lock"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	nrpkg "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/services/inventory"
)

// InventoryUC implements inventory.InventoryUC
type InventoryUC struct {
	repo   inventory.InventoryRepo
	locker lock.Locker
	nowFn  func() time.Time
}

// NewInventoryUC creates a new inventory use case
func NewInventoryUC(repo inventory.InventoryRepo, locker lock.Locker) *InventoryUC {
	return &InventoryUC{
		repo:   repo,
		locker: locker,
		nowFn:  time.Now,
	}
}

// Seed creates the ledger of a new trip
func (uc *InventoryUC) Seed(ctx context.Context, tripID uuid.UUID, total int) error {
	if total < 0 {
		return fmt.Errorf("seed %d seats: %w", total, models.ErrInvalidCapacity)
	}
	if err := uc.repo.CreateLedger(ctx, models.NewSeatLedger(tripID, total, uc.nowFn())); err != nil {
		return fmt.Errorf("failed to seed ledger: %w", err)
	}
	return nil
}

// Hold reserves seats for a booking and issues a single-use token. The check
// and the increment happen under the trip lock, so concurrent holds can never
// oversell.
func (uc *InventoryUC) Hold(ctx context.Context, tripID, bookingID uuid.UUID, seats int) (*models.SeatHold, error) {
	if seats <= 0 {
		return nil, fmt.Errorf("hold %d seats: %w", seats, models.ErrInvalidSeats)
	}

	var hold *models.SeatHold
	err := uc.withTrip(ctx, tripID, func(ledger *models.SeatLedger) error {
		if err := ledger.Hold(seats); err != nil {
			return err
		}

		now := uc.nowFn()
		ledger.UpdatedAt = now
		hold = &models.SeatHold{
			ID:        uuid.New(),
			TripID:    tripID,
			BookingID: bookingID,
			Seats:     seats,
			Status:    models.HoldStatusActive,
			CreatedAt: now,
		}
		if err := uc.repo.InsertHold(ctx, ledger, hold); err != nil {
			return fmt.Errorf("failed to store hold: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.DebugCtx(ctx, "Seats held",
		logger.UUID("trip_id", tripID),
		logger.UUID("hold_id", hold.ID),
		logger.Int("seats", seats))
	return hold, nil
}

// Confirm turns an active hold into confirmed seats
func (uc *InventoryUC) Confirm(ctx context.Context, holdID uuid.UUID) error {
	return uc.resolve(ctx, holdID, models.HoldStatusActive, models.HoldStatusConfirmed, (*models.SeatLedger).Confirm)
}

// Release gives an active hold's seats back
func (uc *InventoryUC) Release(ctx context.Context, holdID uuid.UUID) error {
	return uc.resolve(ctx, holdID, models.HoldStatusActive, models.HoldStatusReleased, (*models.SeatLedger).Release)
}

// ReleaseConfirmed gives a paid booking's seats back after cancellation
func (uc *InventoryUC) ReleaseConfirmed(ctx context.Context, holdID uuid.UUID) error {
	return uc.resolve(ctx, holdID, models.HoldStatusConfirmed, models.HoldStatusReleased, (*models.SeatLedger).ReleaseConfirmed)
}

// Freeze stops new holds on a trip. Freezing twice is a no-op.
func (uc *InventoryUC) Freeze(ctx context.Context, tripID uuid.UUID) error {
	return uc.withTrip(ctx, tripID, func(ledger *models.SeatLedger) error {
		if ledger.Frozen {
			return nil
		}
		ledger.Freeze()
		ledger.UpdatedAt = uc.nowFn()
		if err := uc.repo.UpdateLedger(ctx, ledger); err != nil {
			return fmt.Errorf("failed to freeze ledger: %w", err)
		}
		return nil
	})
}

// GetLedger returns the current ledger of a trip
func (uc *InventoryUC) GetLedger(ctx context.Context, tripID uuid.UUID) (*models.SeatLedger, error) {
	return uc.repo.GetLedger(ctx, tripID)
}

func (uc *InventoryUC) resolve(ctx context.Context, holdID uuid.UUID, from, to models.HoldStatus, apply func(*models.SeatLedger, int)) error {
	hold, err := uc.repo.GetHold(ctx, holdID)
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("hold %s: %w", holdID, models.ErrInvalidToken)
	}
	if err != nil {
		return fmt.Errorf("failed to get hold: %w", err)
	}

	return uc.withTrip(ctx, hold.TripID, func(ledger *models.SeatLedger) error {
		// re-read under the lock; the token may have been used meanwhile
		hold, err := uc.repo.GetHold(ctx, holdID)
		if err != nil {
			return fmt.Errorf("failed to reload hold: %w", err)
		}
		if hold.Status != from {
			return fmt.Errorf("hold %s is %s, expected %s: %w", holdID, hold.Status, from, models.ErrInvalidToken)
		}

		now := uc.nowFn()
		if err := hold.Resolve(to, now); err != nil {
			return err
		}
		apply(ledger, hold.Seats)
		ledger.UpdatedAt = now

		if err := uc.repo.ResolveHold(ctx, ledger, hold); err != nil {
			return fmt.Errorf("failed to resolve hold: %w", err)
		}
		return nil
	})
}

// withTrip runs fn on a freshly loaded ledger while holding the trip lock
func (uc *InventoryUC) withTrip(ctx context.Context, tripID uuid.UUID, fn func(*models.SeatLedger) error) error {
	var unlock func()
	err := nrpkg.WithSegment(ctx, "Inventory.TripLock", func() (err error) {
		unlock, err = uc.locker.Lock(ctx, lock.TripKey(tripID))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to lock trip %s: %w", tripID, err)
	}
	defer unlock()

	ledger, err := uc.repo.GetLedger(ctx, tripID)
	if err != nil {
		return err
	}
	return fn(ledger)
}
