package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// InventoryUC owns the per-trip seat ledger. Every mutation of one trip's
// ledger is serialized on the trip lock.
//
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/carpool/services/inventory InventoryUC
type InventoryUC interface {
	Seed(ctx context.Context, tripID uuid.UUID, total int) error
	Hold(ctx context.Context, tripID uuid.UUID, bookingID uuid.UUID, seats int) (*models.SeatHold, error)
	Confirm(ctx context.Context, holdID uuid.UUID) error
	Release(ctx context.Context, holdID uuid.UUID) error
	ReleaseConfirmed(ctx context.Context, holdID uuid.UUID) error
	Freeze(ctx context.Context, tripID uuid.UUID) error
	GetLedger(ctx context.Context, tripID uuid.UUID) (*models.SeatLedger, error)
}
