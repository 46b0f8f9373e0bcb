package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/query"
	httpHandler "github.com/piresc/carpool/services/query/handler/http"
)

// Handler exposes the query layer over HTTP
type Handler struct {
	queryHTTP *httpHandler.QueryHandler
}

// NewHandler creates a new query handler
func NewHandler(queryUC query.QueryUC) *Handler {
	return &Handler{
		queryHTTP: httpHandler.NewQueryHandler(queryUC),
	}
}

// RegisterRoutes registers all read routes
func (h *Handler) RegisterRoutes(e *echo.Echo, mw *middleware.Middleware) {
	auth := mw.Authenticated()

	e.GET("/trips", h.queryHTTP.AvailableTrips, auth)
	e.GET("/rider/bookings", h.queryHTTP.RiderBookings, auth, mw.Role(models.ActorRider))
	e.GET("/driver/stats", h.queryHTTP.DriverStats, auth, mw.Role(models.ActorDriver))
}
