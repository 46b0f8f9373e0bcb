package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/database"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct{ connected bool }

func (f fakeConn) IsConnected() bool { return f.connected }

func newTestServer(t *testing.T, checkers map[string]HealthChecker) *echo.Echo {
	t.Helper()
	svc := NewHealthService(nil)
	for name, c := range checkers {
		svc.AddChecker(name, c)
	}
	e := echo.New()
	RegisterHealthEndpoints(e, "carpool", "1.2.3", svc)
	return e
}

func serve(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPingHandler(t *testing.T) {
	e := newTestServer(t, nil)

	rec := serve(e, "/ping")
	require.Equal(t, http.StatusOK, rec.Code)

	var info BuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "carpool", info.ServiceName)
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.False(t, info.ServerTime.IsZero())
}

func TestLivenessEndpoints(t *testing.T) {
	e := newTestServer(t, map[string]HealthChecker{
		"broken": CheckerFunc(func(context.Context) error { return errors.New("down") }),
	})

	for _, path := range []string{"/healthz", "/health", "/health/live"} {
		assert.Equal(t, http.StatusOK, serve(e, path).Code, path)
	}
}

func TestDetailedHealth(t *testing.T) {
	tests := []struct {
		name       string
		checkers   map[string]HealthChecker
		wantStatus int
		wantState  string
	}{
		{
			name: "all healthy",
			checkers: map[string]HealthChecker{
				"postgres": CheckerFunc(func(context.Context) error { return nil }),
				"nats":     NewConnectionChecker("NATS", fakeConn{connected: true}),
			},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name: "nats disconnected",
			checkers: map[string]HealthChecker{
				"postgres": CheckerFunc(func(context.Context) error { return nil }),
				"nats":     NewConnectionChecker("NATS", fakeConn{connected: false}),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(t, tt.checkers)

			rec := serve(e, "/health/detailed")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantState, resp.Status)
			assert.Equal(t, "carpool", resp.Service)
			assert.Len(t, resp.Dependencies, len(tt.checkers))

			assert.Equal(t, tt.wantStatus, serve(e, "/health/ready").Code)
		})
	}
}

func TestPingChecker_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := database.NewRedisClient(models.RedisConfig{Host: mr.Host(), Port: atoi(t, mr.Port())})
	require.NoError(t, err)

	checker := NewPingChecker(client)
	assert.NoError(t, checker.CheckHealth(context.Background()))

	mr.Close()
	assert.Error(t, checker.CheckHealth(context.Background()))
}

func TestPingChecker_NilClient(t *testing.T) {
	var client *database.PostgresClient
	assert.NoError(t, NewPingChecker(nilPinger(client)).CheckHealth(context.Background()))
	assert.NoError(t, NewConnectionChecker("NATS", nil).CheckHealth(context.Background()))
}

// nilPinger keeps a typed nil from becoming a non-nil interface
func nilPinger(c *database.PostgresClient) pinger {
	if c == nil {
		return nil
	}
	return c
}

func atoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	require.NoError(t, err)
	return n
}
