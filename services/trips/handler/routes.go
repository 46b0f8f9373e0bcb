package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/trips"
	httpHandler "github.com/piresc/carpool/services/trips/handler/http"
)

// Handler exposes the trips service over HTTP
type Handler struct {
	tripsHTTP *httpHandler.TripsHandler
}

// NewHandler creates a new trips handler
func NewHandler(tripUC trips.TripUC) *Handler {
	return &Handler{
		tripsHTTP: httpHandler.NewTripsHandler(tripUC),
	}
}

// RegisterRoutes registers all driver-facing routes
func (h *Handler) RegisterRoutes(e *echo.Echo, mw *middleware.Middleware) {
	driver := e.Group("", mw.Authenticated(), mw.Role(models.ActorDriver))

	driver.POST("/vehicles", h.tripsHTTP.AddVehicle)
	driver.GET("/vehicles", h.tripsHTTP.ListVehicles)
	driver.POST("/trips", h.tripsHTTP.CreateTrip, mw.RateLimit("trips"))
	driver.GET("/driver/trips", h.tripsHTTP.ListDriverTrips)
	driver.PUT("/driver/trips/:id/cancel", h.tripsHTTP.CancelTrip)
	driver.PUT("/driver/trips/:id/complete", h.tripsHTTP.CompleteTrip)
}
