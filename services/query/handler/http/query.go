package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	nrpkg "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/query"
)

// QueryHandler serves the read-only views
type QueryHandler struct {
	queryUC query.QueryUC
}

// NewQueryHandler creates a new query HTTP handler
func NewQueryHandler(queryUC query.QueryUC) *QueryHandler {
	return &QueryHandler{
		queryUC: queryUC,
	}
}

// AvailableTrips lists bookable trips, optionally filtered by source and destination
func (h *QueryHandler) AvailableTrips(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Query.AvailableTrips")

	var filter models.TripFilter
	if err := c.Bind(&filter); err != nil {
		return utils.BadRequestResponse(c, "Invalid query: "+err.Error())
	}

	trips, err := h.queryUC.AvailableTrips(c.Request().Context(), filter)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trips retrieved", trips)
}

// RiderBookings lists the authenticated rider's bookings
func (h *QueryHandler) RiderBookings(c echo.Context) error {
	riderID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	bookings, err := h.queryUC.RiderBookings(c.Request().Context(), riderID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Bookings retrieved", bookings)
}

// DriverStats returns the authenticated driver's dashboard numbers
func (h *QueryHandler) DriverStats(c echo.Context) error {
	driverID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	stats, err := h.queryUC.DriverStats(c.Request().Context(), driverID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Stats retrieved", stats)
}
