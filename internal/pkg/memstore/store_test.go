package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/bookings"
	"github.com/piresc/carpool/services/inventory"
	"github.com/piresc/carpool/services/payments"
	"github.com/piresc/carpool/services/query"
	"github.com/piresc/carpool/services/trips"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ inventory.InventoryRepo = (*Store)(nil)
	_ bookings.BookingRepo    = (*Store)(nil)
	_ bookings.TripReader     = (*Store)(nil)
	_ payments.PaymentRepo    = (*Store)(nil)
	_ trips.TripRepo          = (*Store)(nil)
	_ query.QueryRepo         = (*Store)(nil)
)

var t0 = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func TestLedger_OptimisticVersion(t *testing.T) {
	ctx := context.Background()
	s := New()
	tripID := uuid.New()
	require.NoError(t, s.CreateLedger(ctx, models.NewSeatLedger(tripID, 4, t0)))

	first, err := s.GetLedger(ctx, tripID)
	require.NoError(t, err)
	stale, err := s.GetLedger(ctx, tripID)
	require.NoError(t, err)

	require.NoError(t, first.Hold(2))
	require.NoError(t, s.UpdateLedger(ctx, first))
	assert.Equal(t, int64(1), first.Version)

	require.NoError(t, stale.Hold(1))
	err = s.UpdateLedger(ctx, stale)
	assert.ErrorIs(t, err, models.ErrConcurrentUpdate)

	got, err := s.GetLedger(ctx, tripID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Held)
}

func TestHold_InsertAndResolveAreAtomic(t *testing.T) {
	ctx := context.Background()
	s := New()
	tripID := uuid.New()
	require.NoError(t, s.CreateLedger(ctx, models.NewSeatLedger(tripID, 4, t0)))

	ledger, _ := s.GetLedger(ctx, tripID)
	stale := *ledger
	require.NoError(t, ledger.Hold(3))
	hold := &models.SeatHold{ID: uuid.New(), TripID: tripID, BookingID: uuid.New(), Seats: 3, Status: models.HoldStatusActive, CreatedAt: t0}
	require.NoError(t, s.InsertHold(ctx, ledger, hold))

	// a stale ledger must not persist the second token either
	require.NoError(t, stale.Hold(1))
	other := &models.SeatHold{ID: uuid.New(), TripID: tripID, Seats: 1, Status: models.HoldStatusActive}
	assert.ErrorIs(t, s.InsertHold(ctx, &stale, other), models.ErrConcurrentUpdate)
	_, err := s.GetHold(ctx, other.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, hold.Resolve(models.HoldStatusConfirmed, t0))
	ledger.Confirm(3)
	require.NoError(t, s.ResolveHold(ctx, ledger, hold))

	gotHold, err := s.GetHold(ctx, hold.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HoldStatusConfirmed, gotHold.Status)
	gotLedger, _ := s.GetLedger(ctx, tripID)
	assert.Equal(t, 0, gotLedger.Held)
	assert.Equal(t, 3, gotLedger.Confirmed)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	b := &models.Booking{ID: uuid.New(), TripID: uuid.New(), Seats: 1, Status: models.BookingStatusPendingPayment, CreatedAt: t0}
	require.NoError(t, s.CreateBooking(ctx, b))

	b.Status = models.BookingStatusConfirmed
	got, err := s.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPendingPayment, got.Status)

	got.Seats = 99
	again, _ := s.GetBooking(ctx, b.ID)
	assert.Equal(t, 1, again.Seats)
}

func TestBookings_Listings(t *testing.T) {
	ctx := context.Background()
	s := New()
	tripID := uuid.New()

	pending := &models.Booking{ID: uuid.New(), TripID: tripID, Status: models.BookingStatusPendingPayment, CreatedAt: t0}
	fresh := &models.Booking{ID: uuid.New(), TripID: tripID, Status: models.BookingStatusPendingPayment, CreatedAt: t0.Add(20 * time.Minute)}
	confirmed := &models.Booking{ID: uuid.New(), TripID: tripID, Status: models.BookingStatusConfirmed, CreatedAt: t0}
	cancelled := &models.Booking{ID: uuid.New(), TripID: tripID, Status: models.BookingStatusCancelled, CreatedAt: t0}
	elsewhere := &models.Booking{ID: uuid.New(), TripID: uuid.New(), Status: models.BookingStatusPendingPayment, CreatedAt: t0}
	for _, b := range []*models.Booking{pending, fresh, confirmed, cancelled, elsewhere} {
		require.NoError(t, s.CreateBooking(ctx, b))
	}

	active, err := s.ListActiveBookingsByTrip(ctx, tripID)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	stale, err := s.ListStalePendingBookings(ctx, t0.Add(15*time.Minute), 10)
	require.NoError(t, err)
	assert.Len(t, stale, 2)

	limited, err := s.ListStalePendingBookings(ctx, t0.Add(15*time.Minute), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestPayments_OnePerBooking(t *testing.T) {
	ctx := context.Background()
	s := New()
	bookingID := uuid.New()

	p := &models.Payment{ID: uuid.New(), BookingID: bookingID, Amount: 2000, Status: models.PaymentStatusInitiated}
	require.NoError(t, s.CreatePayment(ctx, p))
	assert.Error(t, s.CreatePayment(ctx, &models.Payment{ID: uuid.New(), BookingID: bookingID}))

	got, err := s.GetPaymentByBooking(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = s.GetPaymentByBooking(ctx, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestQuery_AvailableTripsAndStats(t *testing.T) {
	ctx := context.Background()
	s := New()
	driverID := uuid.New()
	now := t0

	mk := func(src, dst string, dep time.Time, status models.TripStatus, seats int) *models.Trip {
		trip := &models.Trip{ID: uuid.New(), DriverID: driverID, Source: src, Destination: dst,
			DepartureTime: dep, TotalSeats: seats, PricePerSeat: 1000, Status: status}
		require.NoError(t, s.CreateTrip(ctx, trip))
		require.NoError(t, s.CreateLedger(ctx, models.NewSeatLedger(trip.ID, seats, now)))
		return trip
	}

	open := mk("Downtown", "Airport", now.Add(2*time.Hour), models.TripStatusScheduled, 4)
	mk("Downtown", "Airport", now.Add(-time.Hour), models.TripStatusScheduled, 4)
	mk("Downtown", "Harbor", now.Add(3*time.Hour), models.TripStatusScheduled, 4)
	mk("Downtown", "Airport", now.Add(4*time.Hour), models.TripStatusCancelled, 4)
	full := mk("downtown", "AIRPORT", now.Add(5*time.Hour), models.TripStatusScheduled, 1)

	l, _ := s.GetLedger(ctx, full.ID)
	require.NoError(t, l.Hold(1))
	require.NoError(t, s.UpdateLedger(ctx, l))

	trips, err := s.AvailableTrips(ctx, models.TripFilter{Source: "down", Destination: "air"}, now)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, open.ID, trips[0].TripID)
	assert.Equal(t, 4, trips[0].SeatsLeft)

	paid := &models.Booking{ID: uuid.New(), TripID: open.ID, Seats: 2, UnitPrice: 1000, Status: models.BookingStatusConfirmed}
	refunded := &models.Booking{ID: uuid.New(), TripID: open.ID, Seats: 1, UnitPrice: 1000, Status: models.BookingStatusCancelled}
	require.NoError(t, s.CreateBooking(ctx, paid))
	require.NoError(t, s.CreateBooking(ctx, refunded))
	require.NoError(t, s.CreatePayment(ctx, &models.Payment{ID: uuid.New(), BookingID: paid.ID, Amount: 2000, Status: models.PaymentStatusSettled}))
	require.NoError(t, s.CreatePayment(ctx, &models.Payment{ID: uuid.New(), BookingID: refunded.ID, Amount: 1000, Status: models.PaymentStatusRefunded}))

	dayStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	stats, err := s.DriverStats(ctx, driverID, dayStart, dayStart.Add(24*time.Hour), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), stats.Earnings)
	assert.Equal(t, 5, stats.TotalTrips)
	assert.Equal(t, 5, stats.TodaysTrips)
	assert.Len(t, stats.UpcomingTrips, 3)
}
