package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/bookings"
	httpHandler "github.com/piresc/carpool/services/bookings/handler/http"
	natsHandler "github.com/piresc/carpool/services/bookings/handler/nats"
)

// Handler combines the HTTP and event handlers of the bookings service
type Handler struct {
	bookingsHTTP *httpHandler.BookingsHandler
	settlement   *natsHandler.SettlementHandler
}

// NewHandler creates a new combined handler
func NewHandler(bookingUC bookings.BookingUC, nrApp *newrelic.Application) *Handler {
	return &Handler{
		bookingsHTTP: httpHandler.NewBookingsHandler(bookingUC),
		settlement:   natsHandler.NewSettlementHandler(bookingUC, nrApp),
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, mw *middleware.Middleware) {
	auth := mw.Authenticated()
	rider := mw.Role(models.ActorRider)

	e.POST("/bookings", h.bookingsHTTP.CreateBooking, auth, rider, mw.RateLimit("bookings"))
	e.GET("/bookings/:id", h.bookingsHTTP.GetBooking, auth, rider)
	e.PUT("/rider/bookings/:id/cancel", h.bookingsHTTP.CancelBooking, auth, mw.Role(models.ActorRider, models.ActorDriver))
	e.POST("/payments", h.bookingsHTTP.MakePayment, auth, rider, mw.RateLimit("payments"))

	// Internal routes for service-to-service communication (API key required)
	internal := e.Group("/internal", mw.APIKeyHandler("payment-provider"))
	internal.POST("/payments/result", h.bookingsHTTP.ProviderResult)
}

// Settlement returns the broker-neutral settlement result handler
func (h *Handler) Settlement() *natsHandler.SettlementHandler {
	return h.settlement
}
