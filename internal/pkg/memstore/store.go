// Package memstore is the in-memory storage driver. It implements every
// repository interface of the services and is used for local runs and tests.
// Values are copied on the way in and out so callers never share state with
// the store.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// Store holds all tables behind one RWMutex. Reads take the read lock and so
// observe a single consistent snapshot.
type Store struct {
	mu       sync.RWMutex
	vehicles map[uuid.UUID]models.Vehicle
	trips    map[uuid.UUID]models.Trip
	ledgers  map[uuid.UUID]models.SeatLedger
	holds    map[uuid.UUID]models.SeatHold
	bookings map[uuid.UUID]models.Booking
	payments map[uuid.UUID]models.Payment
	// payment id by booking id
	paymentByBooking map[uuid.UUID]uuid.UUID
}

// New creates an empty store
func New() *Store {
	return &Store{
		vehicles:         make(map[uuid.UUID]models.Vehicle),
		trips:            make(map[uuid.UUID]models.Trip),
		ledgers:          make(map[uuid.UUID]models.SeatLedger),
		holds:            make(map[uuid.UUID]models.SeatHold),
		bookings:         make(map[uuid.UUID]models.Booking),
		payments:         make(map[uuid.UUID]models.Payment),
		paymentByBooking: make(map[uuid.UUID]uuid.UUID),
	}
}

// Ping always succeeds; it lets the store register as a health dependency.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
