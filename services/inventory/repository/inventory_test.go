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
	"github.com/piresc/carpool/services/inventory/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ledgerCols = []string{"trip_id", "total", "held", "confirmed", "frozen", "version", "updated_at"}
	holdCols   = []string{"id", "trip_id", "booking_id", "seats", "status", "created_at", "resolved_at"}
)

func setupInventoryRepoTest(t *testing.T) (*repository.InventoryRepo, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")
	return repository.NewInventoryRepository(&models.Config{}, db), mock
}

func sampleLedger() *models.SeatLedger {
	return &models.SeatLedger{TripID: uuid.New(), Total: 4, Held: 2, Version: 3, UpdatedAt: time.Now().UTC()}
}

func sampleHold(l *models.SeatLedger) *models.SeatHold {
	return &models.SeatHold{ID: uuid.New(), TripID: l.TripID, BookingID: uuid.New(), Seats: 2,
		Status: models.HoldStatusActive, CreatedAt: l.UpdatedAt}
}

func TestCreateLedger(t *testing.T) {
	repo, mock := setupInventoryRepoTest(t)
	l := models.NewSeatLedger(uuid.New(), 4, time.Now().UTC())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO seat_ledgers")).
		WithArgs(l.TripID, 4, 0, 0, false, int64(0), l.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.CreateLedger(context.Background(), l))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLedger(t *testing.T) {
	repo, mock := setupInventoryRepoTest(t)
	l := sampleLedger()

	mock.ExpectQuery(regexp.QuoteMeta("FROM seat_ledgers WHERE trip_id = $1")).
		WithArgs(l.TripID).
		WillReturnRows(sqlmock.NewRows(ledgerCols).AddRow(l.TripID.String(), 4, 2, 1, false, 3, l.UpdatedAt))

	got, err := repo.GetLedger(context.Background(), l.TripID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Available())
	assert.Equal(t, int64(3), got.Version)

	mock.ExpectQuery(regexp.QuoteMeta("FROM seat_ledgers WHERE trip_id = $1")).
		WillReturnRows(sqlmock.NewRows(ledgerCols))
	_, err = repo.GetLedger(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateLedger_Versioned(t *testing.T) {
	repo, mock := setupInventoryRepoTest(t)
	l := sampleLedger()

	mock.ExpectExec(regexp.QuoteMeta("WHERE trip_id = $5 AND version = $6")).
		WithArgs(l.Held, l.Confirmed, l.Frozen, l.UpdatedAt, l.TripID, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLedger(context.Background(), l))
	assert.Equal(t, int64(4), l.Version)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE seat_ledgers")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateLedger(context.Background(), l)
	assert.ErrorIs(t, err, models.ErrConcurrentUpdate)
	assert.Equal(t, int64(4), l.Version)
}

func TestInsertHold_Atomic(t *testing.T) {
	repo, mock := setupInventoryRepoTest(t)
	l := sampleLedger()
	h := sampleHold(l)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seat_ledgers")).
		WithArgs(l.Held, l.Confirmed, l.Frozen, l.UpdatedAt, l.TripID, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO seat_holds")).
		WithArgs(h.ID, h.TripID, h.BookingID, h.Seats, h.Status, h.CreatedAt, h.ResolvedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.InsertHold(context.Background(), l, h))
	assert.Equal(t, int64(4), l.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertHold_RollsBackOnFailure(t *testing.T) {
	repo, mock := setupInventoryRepoTest(t)
	l := sampleLedger()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seat_ledgers")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO seat_holds")).
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := repo.InsertHold(context.Background(), l, sampleHold(l))
	assert.ErrorContains(t, err, "failed to insert hold")
	assert.Equal(t, int64(3), l.Version, "version must not advance when nothing was committed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertHold_StaleLedger(t *testing.T) {
	repo, mock := setupInventoryRepoTest(t)
	l := sampleLedger()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seat_ledgers")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.InsertHold(context.Background(), l, sampleHold(l))
	assert.ErrorIs(t, err, models.ErrConcurrentUpdate)
}

func TestResolveHold(t *testing.T) {
	repo, mock := setupInventoryRepoTest(t)
	l := sampleLedger()
	h := sampleHold(l)
	require.NoError(t, h.Resolve(models.HoldStatusConfirmed, time.Now().UTC()))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seat_ledgers")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seat_holds")).
		WithArgs(h.Status, h.ResolvedAt, h.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.ResolveHold(context.Background(), l, h))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveHold_UnknownHold(t *testing.T) {
	repo, mock := setupInventoryRepoTest(t)
	l := sampleLedger()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seat_ledgers")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seat_holds")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ResolveHold(context.Background(), l, sampleHold(l))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetHold(t *testing.T) {
	repo, mock := setupInventoryRepoTest(t)
	l := sampleLedger()
	h := sampleHold(l)

	mock.ExpectQuery(regexp.QuoteMeta("FROM seat_holds WHERE id = $1")).
		WithArgs(h.ID).
		WillReturnRows(sqlmock.NewRows(holdCols).
			AddRow(h.ID.String(), h.TripID.String(), h.BookingID.String(), 2, "active", h.CreatedAt, nil))

	got, err := repo.GetHold(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HoldStatusActive, got.Status)
	assert.Nil(t, got.ResolvedAt)
}
