package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/internal/utils"
)

// AvailableTrips lists scheduled trips with free seats departing after
// departingAfter, soonest first
func (s *Store) AvailableTrips(_ context.Context, filter models.TripFilter, departingAfter time.Time) ([]*models.AvailableTrip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*models.AvailableTrip{}
	for _, t := range s.trips {
		if t.Status != models.TripStatusScheduled || !t.DepartureTime.After(departingAfter) {
			continue
		}
		if !utils.ContainsFold(t.Source, filter.Source) || !utils.ContainsFold(t.Destination, filter.Destination) {
			continue
		}
		ledger, ok := s.ledgers[t.ID]
		if !ok || ledger.Frozen || ledger.Available() <= 0 {
			continue
		}
		out = append(out, &models.AvailableTrip{
			TripID:        t.ID,
			Source:        t.Source,
			Destination:   t.Destination,
			DepartureTime: t.DepartureTime,
			SeatsLeft:     ledger.Available(),
			PricePerSeat:  t.PricePerSeat,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.Before(out[j].DepartureTime) })
	return out, nil
}

// RiderBookings lists a rider's bookings with their trips, newest first
func (s *Store) RiderBookings(_ context.Context, riderID uuid.UUID) ([]*models.RiderBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*models.RiderBooking{}
	for _, b := range s.bookings {
		if b.RiderID != riderID {
			continue
		}
		t, ok := s.trips[b.TripID]
		if !ok {
			continue
		}
		out = append(out, &models.RiderBooking{
			BookingID:     b.ID,
			TripID:        b.TripID,
			Seats:         b.Seats,
			Amount:        b.Amount(),
			Status:        b.Status,
			CancelReason:  b.CancelReason,
			Source:        t.Source,
			Destination:   t.Destination,
			DepartureTime: t.DepartureTime,
			TripStatus:    t.Status,
			CreatedAt:     b.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// DriverStats aggregates a driver's earnings and trip counts
func (s *Store) DriverStats(_ context.Context, driverID uuid.UUID, dayStart, dayEnd, now time.Time) (*models.DriverStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trips := s.driverTrips(driverID)
	stats := &models.DriverStats{
		TotalTrips:    len(trips),
		UpcomingTrips: []*models.Trip{},
	}

	driverTrips := make(map[uuid.UUID]struct{}, len(trips))
	for _, t := range trips {
		driverTrips[t.ID] = struct{}{}
		if !t.DepartureTime.Before(dayStart) && t.DepartureTime.Before(dayEnd) {
			stats.TodaysTrips++
		}
		if t.DepartureTime.After(now) && t.Status != models.TripStatusCancelled {
			stats.UpcomingTrips = append(stats.UpcomingTrips, t)
		}
	}

	for _, b := range s.bookings {
		if _, ok := driverTrips[b.TripID]; !ok || b.Status != models.BookingStatusConfirmed {
			continue
		}
		id, ok := s.paymentByBooking[b.ID]
		if !ok {
			continue
		}
		if p := s.payments[id]; p.Status == models.PaymentStatusSettled {
			stats.Earnings += p.Amount
		}
	}
	return stats, nil
}
