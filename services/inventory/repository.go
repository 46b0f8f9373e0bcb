package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// InventoryRepo persists ledgers and hold tokens. Ledger writes are
// optimistic: they succeed only while the stored version equals the
// ledger's Version, which is then incremented. A stale write returns
// models.ErrConcurrentUpdate.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/carpool/services/inventory InventoryRepo
type InventoryRepo interface {
	CreateLedger(ctx context.Context, ledger *models.SeatLedger) error
	GetLedger(ctx context.Context, tripID uuid.UUID) (*models.SeatLedger, error)
	UpdateLedger(ctx context.Context, ledger *models.SeatLedger) error
	// InsertHold stores a new token and the ledger that granted it atomically.
	InsertHold(ctx context.Context, ledger *models.SeatLedger, hold *models.SeatHold) error
	// ResolveHold stores a token's new status and the ledger change atomically.
	ResolveHold(ctx context.Context, ledger *models.SeatLedger, hold *models.SeatHold) error
	GetHold(ctx context.Context, holdID uuid.UUID) (*models.SeatHold, error)
}
