package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/eventbus"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/bookings/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestHandle_AppliesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockBookingUC(ctrl)
	h := NewSettlementHandler(mockUC, nil)

	bookingID, paymentID := uuid.New(), uuid.New()
	mockUC.EXPECT().
		ConfirmPayment(gomock.Any(), bookingID, models.SettlementResult{PaymentID: paymentID, Settled: false, Reason: "declined"}).
		Return(&models.Booking{ID: bookingID, Status: models.BookingStatusCancelled}, nil)

	err := h.Handle(context.Background(), constants.SubjectPaymentProviderResult, encode(t, models.ProviderResultEvent{
		BookingID: bookingID, PaymentID: paymentID, Settled: false, Reason: "declined",
	}))
	assert.NoError(t, err)
}

func TestHandle_LateChargeOnExpiredBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockBookingUC(ctrl)
	h := NewSettlementHandler(mockUC, nil)

	bookingID, paymentID := uuid.New(), uuid.New()
	mockUC.EXPECT().
		ConfirmPayment(gomock.Any(), bookingID, models.SettlementResult{PaymentID: paymentID, Settled: true, ProviderRef: "ch_late"}).
		Return(&models.Booking{ID: bookingID, Status: models.BookingStatusExpired}, nil)

	err := h.Handle(context.Background(), constants.SubjectPaymentProviderResult, encode(t, models.ProviderResultEvent{
		BookingID: bookingID, PaymentID: paymentID, Settled: true, ProviderRef: "ch_late",
	}))
	assert.NoError(t, err)
}

func TestHandle_Poison(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockBookingUC(ctrl)
	h := NewSettlementHandler(mockUC, nil)

	err := h.Handle(context.Background(), constants.SubjectPaymentProviderResult, []byte("{not json"))
	assert.ErrorIs(t, err, eventbus.ErrPoison)

	err = h.Handle(context.Background(), constants.SubjectPaymentProviderResult, []byte(`{"settled":true}`))
	assert.ErrorIs(t, err, eventbus.ErrPoison)
}

func TestHandle_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		poison bool
	}{
		{"unknown booking", fmt.Errorf("booking: %w", models.ErrNotFound), true},
		{"already cancelled", models.ErrInvalidTransition, true},
		{"foreign payment", models.ErrInvalidInput, true},
		{"late charge refund failed", fmt.Errorf("booking is expired: %w", models.ErrRefundFailed), false},
		{"lock timeout", context.DeadlineExceeded, false},
		{"database down", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUC := mocks.NewMockBookingUC(ctrl)
			h := NewSettlementHandler(mockUC, nil)
			mockUC.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

			err := h.Handle(context.Background(), constants.SubjectPaymentProviderResult,
				encode(t, models.ProviderResultEvent{BookingID: uuid.New(), Settled: true}))

			require.Error(t, err)
			assert.Equal(t, tt.poison, errors.Is(err, eventbus.ErrPoison))
		})
	}
}
