package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/memstore"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/query/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)

func setupQueryUC(t *testing.T) (*queryUC, *mocks.MockQueryRepo) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockQueryRepo(ctrl)
	uc, err := NewQueryUC(&models.Config{}, repo)
	require.NoError(t, err)
	q := uc.(*queryUC)
	q.nowFn = func() time.Time { return fixedNow }
	return q, repo
}

func TestAvailableTrips_TrimsFilterAndExcludesDeparted(t *testing.T) {
	uc, repo := setupQueryUC(t)
	want := []*models.AvailableTrip{{TripID: uuid.New(), SeatsLeft: 2}}

	repo.EXPECT().
		AvailableTrips(gomock.Any(), models.TripFilter{Source: "Bandung", Destination: ""}, fixedNow).
		Return(want, nil)

	got, err := uc.AvailableTrips(context.Background(), models.TripFilter{Source: "  Bandung "})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDriverStats_DayWindow(t *testing.T) {
	uc, repo := setupQueryUC(t)
	driverID := uuid.New()

	repo.EXPECT().
		DriverStats(gomock.Any(), driverID,
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			fixedNow).
		Return(&models.DriverStats{TotalTrips: 3}, nil)

	stats, err := uc.DriverStats(context.Background(), driverID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTrips)
}

func TestRiderBookings(t *testing.T) {
	uc, repo := setupQueryUC(t)
	riderID := uuid.New()

	repo.EXPECT().RiderBookings(gomock.Any(), riderID).Return([]*models.RiderBooking{}, nil)

	got, err := uc.RiderBookings(context.Background(), riderID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQueries_OverMemstore(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	driverID, riderID := uuid.New(), uuid.New()

	upcoming := &models.Trip{ID: uuid.New(), DriverID: driverID, Source: "Bandung", Destination: "Jakarta",
		DepartureTime: fixedNow.Add(2 * time.Hour), TotalSeats: 4, PricePerSeat: 1000, Status: models.TripStatusScheduled}
	departed := &models.Trip{ID: uuid.New(), DriverID: driverID, Source: "Bandung", Destination: "Bogor",
		DepartureTime: fixedNow.Add(-2 * time.Hour), TotalSeats: 4, PricePerSeat: 1000, Status: models.TripStatusScheduled}
	for _, tr := range []*models.Trip{upcoming, departed} {
		require.NoError(t, store.CreateTrip(ctx, tr))
		require.NoError(t, store.CreateLedger(ctx, models.NewSeatLedger(tr.ID, tr.TotalSeats, fixedNow)))
	}

	booking := &models.Booking{ID: uuid.New(), TripID: upcoming.ID, RiderID: riderID, Seats: 2, UnitPrice: 1000,
		Status: models.BookingStatusConfirmed, CreatedAt: fixedNow}
	require.NoError(t, store.CreateBooking(ctx, booking))
	require.NoError(t, store.CreatePayment(ctx, &models.Payment{ID: uuid.New(), BookingID: booking.ID, Amount: 2000, Status: models.PaymentStatusSettled}))

	uc, err := NewQueryUC(&models.Config{}, store)
	require.NoError(t, err)
	uc.(*queryUC).nowFn = func() time.Time { return fixedNow }

	trips, err := uc.AvailableTrips(ctx, models.TripFilter{Source: "bandung"})
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, upcoming.ID, trips[0].TripID)

	bookings, err := uc.RiderBookings(ctx, riderID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Jakarta", bookings[0].Destination)
	assert.Equal(t, int64(2000), bookings[0].Amount)

	stats, err := uc.DriverStats(ctx, driverID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), stats.Earnings)
	assert.Equal(t, 2, stats.TotalTrips)
	assert.Equal(t, 2, stats.TodaysTrips)
	require.Len(t, stats.UpcomingTrips, 1)
	assert.Equal(t, upcoming.ID, stats.UpcomingTrips[0].ID)
}
