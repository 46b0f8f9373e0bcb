package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/payments/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentCols = []string{"id", "booking_id", "amount", "status", "provider_ref", "failure_reason", "created_at", "updated_at"}

func setupPaymentRepoTest(t *testing.T) (*repository.PaymentRepo, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")
	return repository.NewPaymentRepository(&models.Config{}, db), mock
}

func TestCreatePayment_Success(t *testing.T) {
	repo, mock := setupPaymentRepoTest(t)
	now := time.Now()
	p := &models.Payment{ID: uuid.New(), BookingID: uuid.New(), Amount: 2000, Status: models.PaymentStatusInitiated, CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(p.ID, p.BookingID, p.Amount, p.Status, "", "", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.CreatePayment(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePayment_Error(t *testing.T) {
	repo, mock := setupPaymentRepoTest(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).WillReturnError(assert.AnError)

	err := repo.CreatePayment(context.Background(), &models.Payment{ID: uuid.New()})
	assert.ErrorContains(t, err, "failed to create payment")
}

func TestGetPayment(t *testing.T) {
	repo, mock := setupPaymentRepoTest(t)
	id, bookingID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(id.String(), bookingID.String(), 2000, "settled", "ch_1", "", now, now))

	p, err := repo.GetPayment(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, bookingID, p.BookingID)
	assert.Equal(t, models.PaymentStatusSettled, p.Status)
	assert.Equal(t, "ch_1", p.ProviderRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPaymentByBooking_NotFound(t *testing.T) {
	repo, mock := setupPaymentRepoTest(t)
	bookingID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE booking_id = $1")).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows(paymentCols))

	_, err := repo.GetPaymentByBooking(context.Background(), bookingID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdatePayment(t *testing.T) {
	repo, mock := setupPaymentRepoTest(t)
	p := &models.Payment{ID: uuid.New(), Status: models.PaymentStatusFailed, FailureReason: "declined", UpdatedAt: time.Now()}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments")).
		WithArgs(p.Status, "", "declined", p.UpdatedAt, p.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdatePayment(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePayment_NoRows(t *testing.T) {
	repo, mock := setupPaymentRepoTest(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePayment(context.Background(), &models.Payment{ID: uuid.New()})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
