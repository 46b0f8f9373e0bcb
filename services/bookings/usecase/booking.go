package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/lock"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/bookings"
	"github.com/piresc/carpool/services/inventory"
	"github.com/piresc/carpool/services/payments"
)

const (
	defaultHoldTimeout = 15 * time.Minute
	defaultSweepBatch  = 100
)

// bookingUC implements bookings.BookingUC
type bookingUC struct {
	cfg       *models.Config
	repo      bookings.BookingRepo
	trips     bookings.TripReader
	inventory inventory.InventoryUC
	payments  payments.PaymentUC
	locker    lock.Locker
	bookingGW bookings.BookingGW
	nowFn     func() time.Time
}

// NewBookingUC creates a new booking use case
func NewBookingUC(
	cfg *models.Config,
	repo bookings.BookingRepo,
	trips bookings.TripReader,
	inventoryUC inventory.InventoryUC,
	paymentUC payments.PaymentUC,
	locker lock.Locker,
	bookingGW bookings.BookingGW,
) (bookings.BookingUC, error) {
	if locker == nil {
		return nil, errors.New("locker is required")
	}
	return &bookingUC{
		cfg:       cfg,
		repo:      repo,
		trips:     trips,
		inventory: inventoryUC,
		payments:  paymentUC,
		locker:    locker,
		bookingGW: bookingGW,
		nowFn:     time.Now,
	}, nil
}

// CreateBooking holds seats and opens a pending booking with an initiated
// payment for seats x the trip's current price.
func (uc *bookingUC) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	if req.Seats <= 0 {
		return nil, fmt.Errorf("book %d seats: %w", req.Seats, models.ErrInvalidSeats)
	}

	trip, err := uc.trips.GetTrip(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != models.TripStatusScheduled {
		return nil, fmt.Errorf("trip %s is %s: %w", trip.ID, trip.Status, models.ErrTripNotScheduled)
	}

	bookingID := uuid.New()
	unlock, err := uc.lockBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	hold, err := uc.inventory.Hold(ctx, trip.ID, bookingID, req.Seats)
	if err != nil {
		return nil, err
	}

	now := uc.nowFn()
	booking := &models.Booking{
		ID:        bookingID,
		TripID:    trip.ID,
		RiderID:   req.RiderID,
		Seats:     req.Seats,
		UnitPrice: trip.PricePerSeat,
		HoldID:    hold.ID,
		Status:    models.BookingStatusPendingPayment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateBooking(ctx, booking); err != nil {
		if relErr := uc.inventory.Release(ctx, hold.ID); relErr != nil {
			logger.ErrorCtx(ctx, "Failed to release hold of unsaved booking",
				logger.UUID("hold_id", hold.ID),
				logger.Err(relErr))
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if _, err := uc.payments.Initiate(ctx, booking.ID, booking.Amount()); err != nil {
		uc.abandon(ctx, booking, models.CancelReasonCreateFailed)
		return nil, err
	}

	// a trip cancelled while the hold was taken may have listed its bookings
	// before this one was stored
	current, err := uc.trips.GetTrip(ctx, trip.ID)
	if err != nil {
		uc.abandon(ctx, booking, models.CancelReasonCreateFailed)
		return nil, fmt.Errorf("failed to recheck trip: %w", err)
	}
	if current.Status != models.TripStatusScheduled {
		uc.abandon(ctx, booking, models.CancelReasonTripCancelled)
		return nil, fmt.Errorf("trip %s is %s: %w", trip.ID, current.Status, models.ErrTripNotScheduled)
	}

	logger.InfoCtx(ctx, "Booking created",
		logger.UUID("booking_id", booking.ID),
		logger.UUID("trip_id", booking.TripID),
		logger.UUID("rider_id", booking.RiderID),
		logger.Int("seats", booking.Seats),
		logger.Int64("amount", booking.Amount()))
	uc.publish(ctx, booking, uc.bookingGW.PublishBookingCreated)
	return booking, nil
}

// MakePayment settles a pending booking synchronously. A wrong amount or a
// provider outage leaves the booking pending; a decline cancels it.
func (uc *bookingUC) MakePayment(ctx context.Context, req models.MakePaymentRequest) (*models.Booking, error) {
	unlock, err := uc.lockBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	booking, err := uc.repo.GetBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.RiderID != req.RiderID {
		return nil, fmt.Errorf("booking %s: %w", booking.ID, models.ErrNotAuthorized)
	}
	if booking.Status != models.BookingStatusPendingPayment {
		return booking, fmt.Errorf("pay booking %s in status %s: %w", booking.ID, booking.Status, models.ErrInvalidTransition)
	}
	if req.Amount != booking.Amount() {
		return booking, fmt.Errorf("paid %d, booking total %d: %w", req.Amount, booking.Amount(), models.ErrAmountMismatch)
	}

	payment, err := uc.payments.GetByBooking(ctx, booking.ID)
	if err != nil {
		return booking, fmt.Errorf("failed to get payment: %w", err)
	}
	payment, err = uc.payments.Settle(ctx, payment.ID, req.Amount)
	if err != nil {
		return booking, err
	}

	booking, err = uc.applySettlement(ctx, booking, payment)
	if err != nil {
		return booking, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return booking, fmt.Errorf("booking %s: %s: %w", booking.ID, payment.FailureReason, models.ErrPaymentDeclined)
	}
	return booking, nil
}

// ConfirmPayment applies a settlement outcome reported by the provider. A
// repeated success for an already confirmed booking is accepted.
func (uc *bookingUC) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, result models.SettlementResult) (*models.Booking, error) {
	unlock, err := uc.lockBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	booking, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	payment, err := uc.payments.GetByBooking(ctx, booking.ID)
	if err != nil {
		return booking, fmt.Errorf("failed to get payment: %w", err)
	}
	if result.PaymentID == uuid.Nil {
		result.PaymentID = payment.ID
	}
	if result.PaymentID != payment.ID {
		return booking, fmt.Errorf("payment %s does not belong to booking %s: %w", result.PaymentID, booking.ID, models.ErrInvalidInput)
	}

	switch booking.Status {
	case models.BookingStatusPendingPayment:
	case models.BookingStatusConfirmed:
		if result.Settled {
			return booking, nil
		}
		return booking, fmt.Errorf("settle booking %s in status %s: %w", booking.ID, booking.Status, models.ErrInvalidTransition)
	default:
		if !result.Settled {
			return booking, fmt.Errorf("settle booking %s in status %s: %w", booking.ID, booking.Status, models.ErrInvalidTransition)
		}
		// the rider was charged for seats they no longer hold
		if _, err := uc.payments.ReverseLateCharge(ctx, result); err != nil {
			return booking, fmt.Errorf("booking %s is %s: %w", booking.ID, booking.Status, err)
		}
		return booking, nil
	}

	payment, err = uc.payments.RecordOutcome(ctx, result)
	if err != nil {
		return booking, err
	}
	return uc.applySettlement(ctx, booking, payment)
}

// CancelBooking cancels a booking on behalf of actor. Cancelling a cancelled
// or expired booking returns it unchanged.
func (uc *bookingUC) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor models.Actor) (*models.Booking, error) {
	booking, _, err := uc.cancel(ctx, bookingID, actor)
	return booking, err
}

// CancelForTrip cancels a booking of a cancelled or completed trip
func (uc *bookingUC) CancelForTrip(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	_, refunded, err := uc.cancel(ctx, bookingID, models.SystemActor())
	return refunded, err
}

// ExpireStale expires pending bookings older than the hold timeout and
// returns how many it expired. A booking that fails is logged and left for
// the next sweep.
func (uc *bookingUC) ExpireStale(ctx context.Context) (int, error) {
	cutoff := uc.nowFn().Add(-uc.holdTimeout())
	stale, err := uc.repo.ListStalePendingBookings(ctx, cutoff, uc.sweepBatch())
	if err != nil {
		return 0, fmt.Errorf("failed to list stale bookings: %w", err)
	}

	expired := 0
	for _, b := range stale {
		if ctx.Err() != nil {
			break
		}
		ok, err := uc.expire(ctx, b.ID, cutoff)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to expire booking",
				logger.UUID("booking_id", b.ID),
				logger.Err(err))
			continue
		}
		if ok {
			expired++
		}
	}

	if expired > 0 {
		logger.InfoCtx(ctx, "Expired stale bookings", logger.Int("count", expired))
	}
	return expired, ctx.Err()
}

// GetBooking returns a booking by id
func (uc *bookingUC) GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	return uc.repo.GetBooking(ctx, bookingID)
}

// ListActiveByTrip returns the pending and confirmed bookings of a trip
func (uc *bookingUC) ListActiveByTrip(ctx context.Context, tripID uuid.UUID) ([]*models.Booking, error) {
	return uc.repo.ListActiveBookingsByTrip(ctx, tripID)
}

func (uc *bookingUC) cancel(ctx context.Context, bookingID uuid.UUID, actor models.Actor) (*models.Booking, bool, error) {
	unlock, err := uc.lockBooking(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	booking, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}
	if err := uc.authorize(ctx, booking, actor); err != nil {
		return nil, false, err
	}
	if booking.Status.IsTerminal() {
		return booking, false, nil
	}

	refunded, err := uc.cancelLocked(ctx, booking, actor.CancelReason())
	return booking, refunded, err
}

func (uc *bookingUC) authorize(ctx context.Context, booking *models.Booking, actor models.Actor) error {
	switch actor.Role {
	case models.ActorSystem:
		return nil
	case models.ActorRider:
		if booking.RiderID == actor.ID {
			return nil
		}
	case models.ActorDriver:
		trip, err := uc.trips.GetTrip(ctx, booking.TripID)
		if err != nil {
			return fmt.Errorf("failed to get trip: %w", err)
		}
		if trip.DriverID == actor.ID {
			return nil
		}
	}
	return fmt.Errorf("%s %s on booking %s: %w", actor.Role, actor.ID, booking.ID, models.ErrNotAuthorized)
}

// cancelLocked refunds a settled payment, gives the seats back and cancels
// the booking. Every step tolerates having run before, so a failed call can
// be retried without refunding twice. Requires the booking lock.
func (uc *bookingUC) cancelLocked(ctx context.Context, booking *models.Booking, reason models.CancelReason) (bool, error) {
	payment, err := uc.payments.GetByBooking(ctx, booking.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return false, fmt.Errorf("failed to get payment: %w", err)
	}

	// money is settled before seats move: a cancel that stops halfway leaves
	// a payment that can no longer be charged
	refunded := false
	if payment != nil {
		switch payment.Status {
		case models.PaymentStatusSettled:
			if _, err := uc.payments.Refund(ctx, payment.ID); err != nil {
				return false, fmt.Errorf("cancel booking %s: %w", booking.ID, err)
			}
			refunded = true
		case models.PaymentStatusInitiated:
			if _, err := uc.payments.Fail(ctx, payment.ID, string(reason)); err != nil {
				return false, fmt.Errorf("failed to void payment: %w", err)
			}
		}
	}

	if booking.Status == models.BookingStatusConfirmed {
		err = uc.inventory.ReleaseConfirmed(ctx, booking.HoldID)
	} else {
		err = uc.inventory.Release(ctx, booking.HoldID)
	}
	if err != nil && !errors.Is(err, models.ErrInvalidToken) {
		return refunded, fmt.Errorf("failed to release seats: %w", err)
	}

	if err := booking.Transition(models.BookingStatusCancelled, reason, uc.nowFn()); err != nil {
		return refunded, err
	}
	if err := uc.repo.UpdateBooking(ctx, booking); err != nil {
		return refunded, fmt.Errorf("failed to update booking: %w", err)
	}

	logger.InfoCtx(ctx, "Booking cancelled",
		logger.UUID("booking_id", booking.ID),
		logger.UUID("trip_id", booking.TripID),
		logger.String("reason", string(reason)),
		logger.Bool("refunded", refunded))
	uc.publish(ctx, booking, uc.bookingGW.PublishBookingCancelled)
	return refunded, nil
}

// applySettlement moves a pending booking according to its payment. Requires
// the booking lock.
func (uc *bookingUC) applySettlement(ctx context.Context, booking *models.Booking, payment *models.Payment) (*models.Booking, error) {
	switch payment.Status {
	case models.PaymentStatusSettled:
		if err := uc.inventory.Confirm(ctx, booking.HoldID); err != nil {
			return booking, fmt.Errorf("failed to confirm seats: %w", err)
		}
		if err := booking.Transition(models.BookingStatusConfirmed, models.CancelReasonNone, uc.nowFn()); err != nil {
			return booking, err
		}
		if err := uc.repo.UpdateBooking(ctx, booking); err != nil {
			return booking, fmt.Errorf("failed to update booking: %w", err)
		}

		logger.InfoCtx(ctx, "Booking confirmed",
			logger.UUID("booking_id", booking.ID),
			logger.UUID("payment_id", payment.ID))
		uc.publish(ctx, booking, uc.bookingGW.PublishBookingConfirmed)
		return booking, nil

	case models.PaymentStatusFailed:
		if _, err := uc.cancelLocked(ctx, booking, models.CancelReasonPaymentFailed); err != nil {
			return booking, err
		}
		return booking, nil
	}
	return booking, fmt.Errorf("payment %s is %s: %w", payment.ID, payment.Status, models.ErrInvalidTransition)
}

func (uc *bookingUC) expire(ctx context.Context, bookingID uuid.UUID, cutoff time.Time) (bool, error) {
	unlock, err := uc.lockBooking(ctx, bookingID)
	if err != nil {
		return false, err
	}
	defer unlock()

	booking, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return false, err
	}
	// paid or cancelled since it was listed
	if booking.Status != models.BookingStatusPendingPayment || booking.CreatedAt.After(cutoff) {
		return false, nil
	}

	payment, err := uc.payments.GetByBooking(ctx, booking.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return false, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment != nil && payment.Status == models.PaymentStatusSettled {
		// the money arrived but the confirmation did not
		_, err := uc.applySettlement(ctx, booking, payment)
		return false, err
	}

	if payment != nil && payment.Status == models.PaymentStatusInitiated {
		if _, err := uc.payments.Fail(ctx, payment.ID, "hold expired"); err != nil {
			return false, fmt.Errorf("failed to void payment: %w", err)
		}
	}
	if err := uc.inventory.Release(ctx, booking.HoldID); err != nil && !errors.Is(err, models.ErrInvalidToken) {
		return false, fmt.Errorf("failed to release seats: %w", err)
	}

	if err := booking.Transition(models.BookingStatusExpired, models.CancelReasonHoldExpired, uc.nowFn()); err != nil {
		return false, err
	}
	if err := uc.repo.UpdateBooking(ctx, booking); err != nil {
		return false, fmt.Errorf("failed to update booking: %w", err)
	}

	logger.InfoCtx(ctx, "Booking expired",
		logger.UUID("booking_id", booking.ID),
		logger.UUID("trip_id", booking.TripID))
	uc.publish(ctx, booking, uc.bookingGW.PublishBookingExpired)
	return true, nil
}

// abandon cancels a booking whose creation could not finish. Requires the
// booking lock.
func (uc *bookingUC) abandon(ctx context.Context, booking *models.Booking, reason models.CancelReason) {
	if _, err := uc.cancelLocked(ctx, booking, reason); err != nil {
		logger.ErrorCtx(ctx, "Failed to cancel abandoned booking",
			logger.UUID("booking_id", booking.ID),
			logger.Err(err))
	}
}

func (uc *bookingUC) lockBooking(ctx context.Context, bookingID uuid.UUID) (func(), error) {
	unlock, err := uc.locker.Lock(ctx, lock.BookingKey(bookingID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock booking %s: %w", bookingID, err)
	}
	return unlock, nil
}

func (uc *bookingUC) publish(ctx context.Context, booking *models.Booking, fn func(context.Context, *models.Booking) error) {
	if err := fn(ctx, booking); err != nil {
		logger.WarnCtx(ctx, "Failed to publish booking event",
			logger.UUID("booking_id", booking.ID),
			logger.String("status", string(booking.Status)),
			logger.Err(err))
	}
}

func (uc *bookingUC) holdTimeout() time.Duration {
	if uc.cfg == nil || uc.cfg.Booking.HoldTimeout <= 0 {
		return defaultHoldTimeout
	}
	return uc.cfg.Booking.HoldTimeout
}

func (uc *bookingUC) sweepBatch() int {
	if uc.cfg == nil || uc.cfg.Booking.SweepBatch <= 0 {
		return defaultSweepBatch
	}
	return uc.cfg.Booking.SweepBatch
}
