package memstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// CreateLedger stores a freshly seeded ledger
func (s *Store) CreateLedger(_ context.Context, ledger *models.SeatLedger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledgers[ledger.TripID]; ok {
		return fmt.Errorf("ledger for trip %s already exists", ledger.TripID)
	}
	s.ledgers[ledger.TripID] = *ledger
	return nil
}

// GetLedger returns a copy of the trip's ledger
func (s *Store) GetLedger(_ context.Context, tripID uuid.UUID) (*models.SeatLedger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.ledgers[tripID]
	if !ok {
		return nil, fmt.Errorf("ledger for trip %s: %w", tripID, models.ErrNotFound)
	}
	return &l, nil
}

// UpdateLedger writes the ledger if nobody else wrote it since it was read
func (s *Store) UpdateLedger(_ context.Context, ledger *models.SeatLedger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.putLedger(ledger)
}

// InsertHold stores a new token together with its ledger
func (s *Store) InsertHold(_ context.Context, ledger *models.SeatLedger, hold *models.SeatHold) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.holds[hold.ID]; ok {
		return fmt.Errorf("hold %s already exists", hold.ID)
	}
	if err := s.putLedger(ledger); err != nil {
		return err
	}
	s.holds[hold.ID] = *hold
	return nil
}

// ResolveHold stores a token's status change together with its ledger
func (s *Store) ResolveHold(_ context.Context, ledger *models.SeatLedger, hold *models.SeatHold) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.holds[hold.ID]; !ok {
		return fmt.Errorf("hold %s: %w", hold.ID, models.ErrNotFound)
	}
	if err := s.putLedger(ledger); err != nil {
		return err
	}
	s.holds[hold.ID] = *hold
	return nil
}

// GetHold returns a copy of a hold token
func (s *Store) GetHold(_ context.Context, holdID uuid.UUID) (*models.SeatHold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.holds[holdID]
	if !ok {
		return nil, fmt.Errorf("hold %s: %w", holdID, models.ErrNotFound)
	}
	return &h, nil
}

// putLedger requires s.mu held for writing
func (s *Store) putLedger(ledger *models.SeatLedger) error {
	current, ok := s.ledgers[ledger.TripID]
	if !ok {
		return fmt.Errorf("ledger for trip %s: %w", ledger.TripID, models.ErrNotFound)
	}
	if current.Version != ledger.Version {
		return fmt.Errorf("ledger for trip %s at version %d, have %d: %w",
			ledger.TripID, current.Version, ledger.Version, models.ErrConcurrentUpdate)
	}
	ledger.Version++
	s.ledgers[ledger.TripID] = *ledger
	return nil
}
