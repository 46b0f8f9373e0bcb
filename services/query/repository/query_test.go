package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/query/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupQueryRepoTest(t *testing.T) (*repository.QueryRepo, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")
	return repository.NewQueryRepository(&models.Config{}, db), mock
}

func TestAvailableTrips(t *testing.T) {
	repo, mock := setupQueryRepoTest(t)
	now := time.Now().UTC()
	tripID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("JOIN seat_ledgers l ON l.trip_id = t.id")).
		WithArgs(models.TripStatusScheduled, now, "%band%", `%50\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"trip_id", "source", "destination", "departure_time", "seats_left", "price_per_seat"}).
			AddRow(tripID.String(), "Bandung", "50% Plaza", now.Add(time.Hour), 2, 1000))
	mock.ExpectRollback()

	got, err := repo.AvailableTrips(context.Background(), models.TripFilter{Source: "band", Destination: "50%"}, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tripID, got[0].TripID)
	assert.Equal(t, 2, got[0].SeatsLeft)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableTrips_EmptyFilterMatchesAll(t *testing.T) {
	repo, mock := setupQueryRepoTest(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM trips t")).
		WithArgs(models.TripStatusScheduled, now, "%%", "%%").
		WillReturnRows(sqlmock.NewRows([]string{"trip_id"}))
	mock.ExpectRollback()

	got, err := repo.AvailableTrips(context.Background(), models.TripFilter{}, now)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAvailableTrips_BeginFails(t *testing.T) {
	repo, mock := setupQueryRepoTest(t)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	_, err := repo.AvailableTrips(context.Background(), models.TripFilter{}, time.Now())
	assert.ErrorContains(t, err, "begin snapshot")
}

func TestRiderBookings(t *testing.T) {
	repo, mock := setupQueryRepoTest(t)
	riderID, bookingID, tripID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.rider_id = $1")).
		WithArgs(riderID).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "trip_id", "seats", "amount", "status", "cancel_reason",
			"source", "destination", "departure_time", "trip_status", "created_at"}).
			AddRow(bookingID.String(), tripID.String(), 2, 2000, "cancelled", "trip_cancelled",
				"Bandung", "Jakarta", now, "cancelled", now))
	mock.ExpectRollback()

	got, err := repo.RiderBookings(context.Background(), riderID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2000), got[0].Amount)
	assert.Equal(t, models.CancelReasonTripCancelled, got[0].CancelReason)
	assert.Equal(t, models.TripStatusCancelled, got[0].TripStatus)
}

func TestDriverStats_OneSnapshot(t *testing.T) {
	repo, mock := setupQueryRepoTest(t)
	driverID, tripID, vehicleID := uuid.New(), uuid.New(), uuid.New()
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	dayStart, dayEnd := now.Truncate(24*time.Hour), now.Truncate(24*time.Hour).Add(24*time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) AS total_trips")).
		WithArgs(driverID, dayStart, dayEnd).
		WillReturnRows(sqlmock.NewRows([]string{"total_trips", "todays_trips"}).AddRow(5, 2))
	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(p.amount), 0)")).
		WithArgs(driverID, models.BookingStatusConfirmed, models.PaymentStatusSettled).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4500))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE driver_id = $1 AND departure_time > $2 AND status <> $3")).
		WithArgs(driverID, now, models.TripStatusCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"id", "driver_id", "vehicle_id", "source", "destination", "departure_time",
			"total_seats", "price_per_seat", "status", "created_at", "updated_at"}).
			AddRow(tripID.String(), driverID.String(), vehicleID.String(), "Bandung", "Jakarta", now.Add(time.Hour),
				4, 1500, "scheduled", now, now))
	mock.ExpectRollback()

	stats, err := repo.DriverStats(context.Background(), driverID, dayStart, dayEnd, now)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalTrips)
	assert.Equal(t, 2, stats.TodaysTrips)
	assert.Equal(t, int64(4500), stats.Earnings)
	require.Len(t, stats.UpcomingTrips, 1)
	assert.Equal(t, tripID, stats.UpcomingTrips[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverStats_QueryFailureRollsBack(t *testing.T) {
	repo, mock := setupQueryRepoTest(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) AS total_trips")).
		WillReturnError(errors.New("canceling statement due to statement timeout"))
	mock.ExpectRollback()

	_, err := repo.DriverStats(context.Background(), uuid.New(), time.Now(), time.Now(), time.Now())
	assert.ErrorContains(t, err, "count trips")
	assert.NoError(t, mock.ExpectationsWereMet())
}
