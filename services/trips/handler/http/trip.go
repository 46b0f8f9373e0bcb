package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	nrpkg "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/trips"
)

// TripsHandler handles HTTP requests for drivers' vehicles and trips
type TripsHandler struct {
	tripUC trips.TripUC
}

// NewTripsHandler creates a new trips HTTP handler
func NewTripsHandler(tripUC trips.TripUC) *TripsHandler {
	return &TripsHandler{
		tripUC: tripUC,
	}
}

// AddVehicle registers a vehicle for the authenticated driver
func (h *TripsHandler) AddVehicle(c echo.Context) error {
	driverID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.AddVehicleRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	req.DriverID = driverID

	vehicle, err := h.tripUC.AddVehicle(c.Request().Context(), req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Vehicle added", vehicle)
}

// ListVehicles returns the authenticated driver's vehicles
func (h *TripsHandler) ListVehicles(c echo.Context) error {
	driverID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	vehicles, err := h.tripUC.ListVehicles(c.Request().Context(), driverID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved", vehicles)
}

// CreateTrip offers seats on one of the driver's vehicles
func (h *TripsHandler) CreateTrip(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Trips.CreateTrip")

	driverID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CreateTripRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if req.VehicleID == uuid.Nil {
		return utils.BadRequestResponse(c, "vehicle_id is required")
	}
	req.DriverID = driverID
	nrpkg.AddTransactionAttribute(txn, "trip.seats", req.Seats)

	trip, err := h.tripUC.CreateTrip(c.Request().Context(), req)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to create trip",
			logger.UUID("driver_id", driverID),
			logger.UUID("vehicle_id", req.VehicleID),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Trip created", trip)
}

// ListDriverTrips returns the authenticated driver's trips
func (h *TripsHandler) ListDriverTrips(c echo.Context) error {
	driverID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	list, err := h.tripUC.ListDriverTrips(c.Request().Context(), driverID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trips retrieved", list)
}

// CancelTrip cancels a trip and every booking on it. Bookings the cascade
// could not settle are listed in the report; the call itself still succeeds.
func (h *TripsHandler) CancelTrip(c echo.Context) error {
	return h.close(c, "Trips.CancelTrip", "Trip cancelled", h.tripUC.CancelTrip)
}

// CompleteTrip marks a trip as driven
func (h *TripsHandler) CompleteTrip(c echo.Context) error {
	return h.close(c, "Trips.CompleteTrip", "Trip completed", h.tripUC.CompleteTrip)
}

type closeFunc func(ctx context.Context, tripID, driverID uuid.UUID) (*models.TripCancellation, error)

func (h *TripsHandler) close(c echo.Context, txnName, message string, fn closeFunc) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, txnName)

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip id")
	}
	driverID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	nrpkg.AddTransactionAttribute(txn, "trip.id", tripID.String())

	report, err := fn(c.Request().Context(), tripID, driverID)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to close trip",
			logger.UUID("trip_id", tripID),
			logger.String("operation", txnName),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	nrpkg.AddTransactionAttribute(txn, "trip.bookings_failed", len(report.Failures))
	nrpkg.AddTransactionAttribute(txn, "trip.steps_failed", len(report.StepFailures))
	return utils.SuccessResponse(c, http.StatusOK, message, report)
}
