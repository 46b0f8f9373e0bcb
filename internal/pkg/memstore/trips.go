package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// CreateVehicle stores a vehicle
func (s *Store) CreateVehicle(_ context.Context, vehicle *models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vehicles[vehicle.ID] = *vehicle
	return nil
}

// GetVehicle returns a copy of a vehicle
func (s *Store) GetVehicle(_ context.Context, vehicleID uuid.UUID) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vehicles[vehicleID]
	if !ok {
		return nil, fmt.Errorf("vehicle %s: %w", vehicleID, models.ErrNotFound)
	}
	return &v, nil
}

// ListVehiclesByDriver returns a driver's vehicles, oldest first
func (s *Store) ListVehiclesByDriver(_ context.Context, driverID uuid.UUID) ([]*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*models.Vehicle{}
	for _, v := range s.vehicles {
		if v.DriverID == driverID {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// CreateTrip stores a trip
func (s *Store) CreateTrip(_ context.Context, trip *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trips[trip.ID] = *trip
	return nil
}

// GetTrip returns a copy of a trip
func (s *Store) GetTrip(_ context.Context, tripID uuid.UUID) (*models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", tripID, models.ErrNotFound)
	}
	return &t, nil
}

// UpdateTrip overwrites a trip's mutable fields
func (s *Store) UpdateTrip(_ context.Context, trip *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[trip.ID]; !ok {
		return fmt.Errorf("trip %s: %w", trip.ID, models.ErrNotFound)
	}
	s.trips[trip.ID] = *trip
	return nil
}

// ListTripsByDriver returns a driver's trips by departure time
func (s *Store) ListTripsByDriver(_ context.Context, driverID uuid.UUID) ([]*models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.driverTrips(driverID)
	return out, nil
}

// driverTrips requires s.mu held
func (s *Store) driverTrips(driverID uuid.UUID) []*models.Trip {
	out := []*models.Trip{}
	for _, t := range s.trips {
		if t.DriverID == driverID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.Before(out[j].DepartureTime) })
	return out
}
