package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/query/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGet(target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestAvailableTrips_BindsFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockQueryUC(ctrl)
	h := NewQueryHandler(mockUC)

	mockUC.EXPECT().
		AvailableTrips(gomock.Any(), models.TripFilter{Source: "Bandung", Destination: "Jakarta"}).
		Return([]*models.AvailableTrip{{TripID: uuid.New(), SeatsLeft: 3, PricePerSeat: 1000}}, nil)

	c, rec := newGet("/trips?source=Bandung&destination=Jakarta")

	require.NoError(t, h.AvailableTrips(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"seats_left":3`)
}

func TestAvailableTrips_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockQueryUC(ctrl)
	h := NewQueryHandler(mockUC)

	mockUC.EXPECT().AvailableTrips(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	c, rec := newGet("/trips")

	require.NoError(t, h.AvailableTrips(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRiderBookings(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockQueryUC(ctrl)
	h := NewQueryHandler(mockUC)
	riderID := uuid.New()

	mockUC.EXPECT().RiderBookings(gomock.Any(), riderID).
		Return([]*models.RiderBooking{{BookingID: uuid.New(), Status: models.BookingStatusConfirmed}}, nil)

	c, rec := newGet("/rider/bookings")
	c.Set(middleware.ContextUserID, riderID)

	require.NoError(t, h.RiderBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"confirmed"`)
}

func TestDriverStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockQueryUC(ctrl)
	h := NewQueryHandler(mockUC)
	driverID := uuid.New()

	mockUC.EXPECT().DriverStats(gomock.Any(), driverID).
		Return(&models.DriverStats{Earnings: 4500, TotalTrips: 3, TodaysTrips: 1, UpcomingTrips: []*models.Trip{}}, nil)

	c, rec := newGet("/driver/stats")
	c.Set(middleware.ContextUserID, driverID)

	require.NoError(t, h.DriverStats(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalTrips":3`)
	assert.Contains(t, rec.Body.String(), `"earnings":4500`)
}

func TestDriverStats_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewQueryHandler(mocks.NewMockQueryUC(ctrl))

	c, rec := newGet("/driver/stats")

	require.NoError(t, h.DriverStats(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
