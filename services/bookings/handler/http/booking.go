package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	nrpkg "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/bookings"
)

// BookingsHandler handles HTTP requests for bookings and payments
type BookingsHandler struct {
	bookingUC bookings.BookingUC
}

// NewBookingsHandler creates a new bookings HTTP handler
func NewBookingsHandler(bookingUC bookings.BookingUC) *BookingsHandler {
	return &BookingsHandler{
		bookingUC: bookingUC,
	}
}

// CreateBooking holds seats on a trip for the authenticated rider
func (h *BookingsHandler) CreateBooking(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Bookings.CreateBooking")

	riderID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if req.TripID == uuid.Nil {
		return utils.BadRequestResponse(c, "trip_id is required")
	}
	req.RiderID = riderID

	nrpkg.AddTransactionAttribute(txn, "trip.id", req.TripID.String())
	nrpkg.AddTransactionAttribute(txn, "booking.seats", req.Seats)

	booking, err := h.bookingUC.CreateBooking(c.Request().Context(), req)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to create booking",
			logger.UUID("trip_id", req.TripID),
			logger.UUID("rider_id", riderID),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Booking created", booking)
}

// GetBooking returns one of the rider's bookings
func (h *BookingsHandler) GetBooking(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking id")
	}
	riderID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	booking, err := h.bookingUC.GetBooking(c.Request().Context(), bookingID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	if booking.RiderID != riderID {
		return utils.DomainErrorResponse(c, models.ErrNotAuthorized)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Booking retrieved", booking)
}

// CancelBooking cancels a booking for the authenticated rider or driver
func (h *BookingsHandler) CancelBooking(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Bookings.CancelBooking")

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking id")
	}
	actor, ok := actorFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	nrpkg.AddTransactionAttribute(txn, "booking.id", bookingID.String())

	booking, err := h.bookingUC.CancelBooking(c.Request().Context(), bookingID, actor)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to cancel booking",
			logger.UUID("booking_id", bookingID),
			logger.String("actor_role", string(actor.Role)),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Booking cancelled", booking)
}

// MakePayment pays a pending booking
func (h *BookingsHandler) MakePayment(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Bookings.MakePayment")

	riderID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.MakePaymentRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if req.BookingID == uuid.Nil {
		return utils.BadRequestResponse(c, "booking_id is required")
	}
	req.RiderID = riderID
	nrpkg.AddTransactionAttribute(txn, "booking.id", req.BookingID.String())

	booking, err := h.bookingUC.MakePayment(c.Request().Context(), req)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Payment not completed",
			logger.UUID("booking_id", req.BookingID),
			logger.Int64("amount", req.Amount),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment settled", booking)
}

// ProviderResult receives an asynchronous settlement outcome from the payment
// provider over HTTP. The same outcome may also arrive on the event bus.
func (h *BookingsHandler) ProviderResult(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Bookings.ProviderResult")

	var event models.ProviderResultEvent
	if err := c.Bind(&event); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if event.BookingID == uuid.Nil {
		return utils.BadRequestResponse(c, "booking_id is required")
	}

	booking, err := h.bookingUC.ConfirmPayment(c.Request().Context(), event.BookingID, models.SettlementResult{
		PaymentID:   event.PaymentID,
		Settled:     event.Settled,
		Reason:      event.Reason,
		ProviderRef: event.ProviderRef,
	})
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Settlement recorded", booking)
}

func actorFrom(c echo.Context) (models.Actor, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		return models.Actor{}, false
	}
	role, _ := c.Get(middleware.ContextUserRole).(string)
	return models.Actor{ID: id, Role: models.ActorRole(role)}, true
}
