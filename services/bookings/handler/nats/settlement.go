package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/carpool/internal/pkg/eventbus"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	nrpkg "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/services/bookings"
)

// SettlementHandler applies payment provider results delivered by the event
// bus. It is broker neutral: the JetStream and NSQ consumers both call Handle.
type SettlementHandler struct {
	bookingUC bookings.BookingUC
	nrApp     *newrelic.Application
}

// NewSettlementHandler creates a settlement result handler. nrApp may be nil.
func NewSettlementHandler(bookingUC bookings.BookingUC, nrApp *newrelic.Application) *SettlementHandler {
	return &SettlementHandler{
		bookingUC: bookingUC,
		nrApp:     nrApp,
	}
}

// Handle decodes a ProviderResultEvent and confirms or fails its booking.
// Messages that can never apply are returned as eventbus.ErrPoison; other
// failures are returned as is so the broker redelivers.
func (h *SettlementHandler) Handle(ctx context.Context, subject string, data []byte) (err error) {
	ctx, end := nrpkg.StartBackgroundTransaction(ctx, h.nrApp, "Bookings.SettlementResult")
	defer func() { end(err) }()

	var event models.ProviderResultEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decode %s: %v: %w", subject, err, eventbus.ErrPoison)
	}
	if event.BookingID == uuid.Nil {
		return fmt.Errorf("%s without booking_id: %w", subject, eventbus.ErrPoison)
	}

	booking, err := h.bookingUC.ConfirmPayment(ctx, event.BookingID, models.SettlementResult{
		PaymentID:   event.PaymentID,
		Settled:     event.Settled,
		Reason:      event.Reason,
		ProviderRef: event.ProviderRef,
	})
	if err != nil {
		if isPermanent(err) {
			return fmt.Errorf("settlement for booking %s: %v: %w", event.BookingID, err, eventbus.ErrPoison)
		}
		return err
	}

	logger.InfoCtx(ctx, "Settlement result applied",
		logger.UUID("booking_id", booking.ID),
		logger.String("status", string(booking.Status)))
	return nil
}

func isPermanent(err error) bool {
	return errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrInvalidTransition) ||
		errors.Is(err, models.ErrInvalidInput) ||
		errors.Is(err, models.ErrInvalidToken)
}
