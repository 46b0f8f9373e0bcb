package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/trips/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, method string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/", &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func asDriver(c echo.Context, id uuid.UUID) {
	c.Set(middleware.ContextUserID, id)
	c.Set(middleware.ContextUserRole, string(models.ActorDriver))
}

func TestCreateTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockTripUC(ctrl)
	h := NewTripsHandler(mockUC)

	driverID, vehicleID := uuid.New(), uuid.New()
	departure := time.Date(2026, 3, 3, 7, 30, 0, 0, time.UTC)
	mockUC.EXPECT().
		CreateTrip(gomock.Any(), models.CreateTripRequest{
			DriverID:      driverID,
			VehicleID:     vehicleID,
			Source:        "Bandung",
			Destination:   "Jakarta",
			DepartureTime: departure,
			Seats:         4,
			PricePerSeat:  1000,
		}).
		Return(&models.Trip{ID: uuid.New(), Status: models.TripStatusScheduled}, nil)

	c, rec := newRequest(t, http.MethodPost, map[string]interface{}{
		"vehicle_id":     vehicleID,
		"source":         "Bandung",
		"destination":    "Jakarta",
		"departure_time": departure,
		"seats":          4,
		"price":          1000,
	})
	asDriver(c, driverID)

	require.NoError(t, h.CreateTrip(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"scheduled"`)
}

func TestCreateTrip_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"foreign vehicle", models.ErrVehicleNotOwned, http.StatusForbidden, "VehicleNotOwned"},
		{"too many seats", fmt.Errorf("5 seats: %w", models.ErrInvalidCapacity), http.StatusBadRequest, "InvalidCapacity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUC := mocks.NewMockTripUC(ctrl)
			h := NewTripsHandler(mockUC)
			mockUC.EXPECT().CreateTrip(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			c, rec := newRequest(t, http.MethodPost, map[string]interface{}{"vehicle_id": uuid.New(), "seats": 5})
			asDriver(c, uuid.New())

			require.NoError(t, h.CreateTrip(c))
			assert.Equal(t, tt.status, rec.Code)

			var resp utils.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.ErrorCode)
		})
	}
}

func TestCreateTrip_MissingVehicle(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewTripsHandler(mocks.NewMockTripUC(ctrl))

	c, rec := newRequest(t, http.MethodPost, map[string]interface{}{"seats": 2})
	asDriver(c, uuid.New())

	require.NoError(t, h.CreateTrip(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelTrip_ReturnsReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockTripUC(ctrl)
	h := NewTripsHandler(mockUC)

	driverID, tripID, failed := uuid.New(), uuid.New(), uuid.New()
	mockUC.EXPECT().CancelTrip(gomock.Any(), tripID, driverID).Return(&models.TripCancellation{
		Trip:      &models.Trip{ID: tripID, Status: models.TripStatusCancelled},
		Cancelled: []uuid.UUID{},
		Refunded:  []uuid.UUID{},
		Failures:  []models.BookingFailure{{BookingID: failed, Kind: models.KindExternalDependency, Reason: "refund failed"}},
	}, nil)

	c, rec := newRequest(t, http.MethodPut, nil)
	c.SetParamNames("id")
	c.SetParamValues(tripID.String())
	asDriver(c, driverID)

	require.NoError(t, h.CancelTrip(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), failed.String())
	assert.Contains(t, rec.Body.String(), "ExternalDependency")
}

func TestCancelTrip_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not the driver", models.ErrNotAuthorized, http.StatusForbidden},
		{"unknown trip", models.ErrNotFound, http.StatusNotFound},
		{"already completed", models.ErrInvalidTransition, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUC := mocks.NewMockTripUC(ctrl)
			h := NewTripsHandler(mockUC)
			mockUC.EXPECT().CancelTrip(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

			c, rec := newRequest(t, http.MethodPut, nil)
			c.SetParamNames("id")
			c.SetParamValues(uuid.New().String())
			asDriver(c, uuid.New())

			require.NoError(t, h.CancelTrip(c))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCompleteTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockTripUC(ctrl)
	h := NewTripsHandler(mockUC)

	driverID, tripID := uuid.New(), uuid.New()
	mockUC.EXPECT().CompleteTrip(gomock.Any(), tripID, driverID).
		Return(&models.TripCancellation{Trip: &models.Trip{ID: tripID, Status: models.TripStatusCompleted}}, nil)

	c, rec := newRequest(t, http.MethodPut, nil)
	c.SetParamNames("id")
	c.SetParamValues(tripID.String())
	asDriver(c, driverID)

	require.NoError(t, h.CompleteTrip(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"completed"`)
}

func TestVehicles(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockTripUC(ctrl)
	h := NewTripsHandler(mockUC)
	driverID := uuid.New()

	mockUC.EXPECT().
		AddVehicle(gomock.Any(), models.AddVehicleRequest{DriverID: driverID, Registration: "D 1234 AB", Model: "Avanza", Capacity: 6}).
		Return(&models.Vehicle{ID: uuid.New(), DriverID: driverID, Capacity: 6}, nil)
	mockUC.EXPECT().ListVehicles(gomock.Any(), driverID).Return([]*models.Vehicle{{ID: uuid.New()}}, nil)

	c, rec := newRequest(t, http.MethodPost, map[string]interface{}{"registration": "D 1234 AB", "model": "Avanza", "capacity": 6})
	asDriver(c, driverID)
	require.NoError(t, h.AddVehicle(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newRequest(t, http.MethodGet, nil)
	asDriver(c, driverID)
	require.NoError(t, h.ListVehicles(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListDriverTrips_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewTripsHandler(mocks.NewMockTripUC(ctrl))

	c, rec := newRequest(t, http.MethodGet, nil)
	require.NoError(t, h.ListDriverTrips(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
