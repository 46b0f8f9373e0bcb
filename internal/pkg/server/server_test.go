package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *logger.ZapLogger {
	return &logger.ZapLogger{Logger: zap.NewNop()}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestGracefulServer_RunUntilCancelled(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	gs := NewGracefulServer(e, testLogger(), "127.0.0.1", freePort(t), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Run(ctx) }()

	require.Eventually(t, func() bool {
		return e.Listener != nil
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + e.Listener.Addr().String() + "/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestGracefulServer_StartFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	e := echo.New()
	e.HideBanner = true
	gs := NewGracefulServer(e, testLogger(), "127.0.0.1", l.Addr().(*net.TCPAddr).Port, time.Second)

	assert.Error(t, gs.Run(context.Background()))
}

func TestShutdownManager_ReverseOrderAndErrors(t *testing.T) {
	sm := NewShutdownManager(testLogger())
	var order []string

	sm.Register("database", func(context.Context) error {
		order = append(order, "database")
		return nil
	})
	sm.Register("consumer", func(context.Context) error {
		order = append(order, "consumer")
		return errors.New("drain failed")
	})
	sm.Register("sweeper", func(context.Context) error {
		order = append(order, "sweeper")
		return nil
	})

	err := sm.Shutdown(context.Background())

	assert.Equal(t, []string{"sweeper", "consumer", "database"}, order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consumer: drain failed")
}
