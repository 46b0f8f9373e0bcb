package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/carpool/internal/pkg/config"
	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/database"
	"github.com/piresc/carpool/internal/pkg/health"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	nrpkg "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/internal/pkg/server"
	bookinggw "github.com/piresc/carpool/services/bookings/gateway"
	bookinghandler "github.com/piresc/carpool/services/bookings/handler"
	bookinguc "github.com/piresc/carpool/services/bookings/usecase"
	inventoryuc "github.com/piresc/carpool/services/inventory/usecase"
	"github.com/piresc/carpool/services/payments"
	paymentgw "github.com/piresc/carpool/services/payments/gateway"
	paymentuc "github.com/piresc/carpool/services/payments/usecase"
	queryhandler "github.com/piresc/carpool/services/query/handler"
	queryuc "github.com/piresc/carpool/services/query/usecase"
	tripgw "github.com/piresc/carpool/services/trips/gateway"
	triphandler "github.com/piresc/carpool/services/trips/handler"
	tripuc "github.com/piresc/carpool/services/trips/usecase"
)

func main() {
	appName := "carpool-service"
	configPath := "config/carpool.env"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("storage", configs.Storage.Driver),
		logger.String("lock", configs.Lock.Driver),
		logger.String("event_bus", configs.EventBus.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown := server.NewShutdownManager(zapLogger)
	healthService := health.NewHealthService(zapLogger)

	// Redis backs the distributed locker and the rate limiter
	var redisClient *database.RedisClient
	if configs.Lock.Driver == "redis" || configs.RateLimit.Enabled {
		redisClient, err = database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		shutdown.Register("redis", func(context.Context) error { return redisClient.Close() })
		healthService.AddChecker("redis", health.NewPingChecker(redisClient))
	}

	store, err := newStorage(configs, shutdown, healthService)
	if err != nil {
		zapLogger.Fatal("Failed to initialize storage", logger.Err(err))
	}

	locker, err := newLocker(configs, redisClient)
	if err != nil {
		zapLogger.Fatal("Failed to initialize locker", logger.Err(err))
	}

	bus, err := newEventBus(ctx, configs, shutdown, healthService)
	if err != nil {
		zapLogger.Fatal("Failed to initialize event bus", logger.Err(err))
	}

	// Initialize use cases bottom-up: ledger, payments, bookings, trips, query
	inventoryUC := inventoryuc.NewInventoryUC(store.inventory, locker)

	paymentUC, err := paymentuc.NewPaymentUC(configs, store.payments, newPaymentProvider(configs.Payment), paymentgw.NewPaymentGW(bus.publisher))
	if err != nil {
		zapLogger.Fatal("Failed to initialize payment use case", logger.Err(err))
	}

	bookingUC, err := bookinguc.NewBookingUC(configs, store.bookings, store.trips, inventoryUC, paymentUC, locker, bookinggw.NewBookingGW(bus.publisher))
	if err != nil {
		zapLogger.Fatal("Failed to initialize booking use case", logger.Err(err))
	}

	tripUC, err := tripuc.NewTripUC(configs, store.trips, inventoryUC, bookingUC, locker, tripgw.NewTripGW(bus.publisher))
	if err != nil {
		zapLogger.Fatal("Failed to initialize trip use case", logger.Err(err))
	}

	queryUC, err := queryuc.NewQueryUC(configs, store.query)
	if err != nil {
		zapLogger.Fatal("Failed to initialize query use case", logger.Err(err))
	}

	// Initialize handlers
	bookingHandler := bookinghandler.NewHandler(bookingUC, nrApp)
	tripHandler := triphandler.NewHandler(tripUC)
	queryHandler := queryhandler.NewHandler(queryUC)

	// Asynchronous provider results arrive on the event bus
	if err := bus.subscribe(ctx, constants.SubjectPaymentProviderResult, bookingHandler.Settlement().Handle); err != nil {
		zapLogger.Fatal("Failed to initialize settlement consumer", logger.Err(err))
	}

	// Expire pending bookings whose hold timed out
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		bookinguc.NewSweeper(bookingUC, configs.Booking.SweepInterval, nrApp).Run(sweepCtx)
	}()
	shutdown.Register("booking-sweeper", func(context.Context) error {
		stopSweeper()
		<-sweepDone
		return nil
	})

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	mwConfig := middleware.Config{
		JWT: configs.JWT,
		APIKeys: map[string]string{
			"payment-provider": configs.APIKey.PaymentProvider,
			"admin-service":    configs.APIKey.AdminService,
		},
		RateLimit: configs.RateLimit,
	}
	if redisClient != nil {
		mwConfig.RedisClient = redisClient.Client
	}
	mw := middleware.NewMiddleware(mwConfig)

	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	bookingHandler.RegisterRoutes(e, mw)
	tripHandler.RegisterRoutes(e, mw)
	queryHandler.RegisterRoutes(e, mw)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdown.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Shutdown finished with errors", logger.Err(err))
	}

	// Shutdown New Relic
	if nrApp != nil {
		zapLogger.Info("Shutting down New Relic...")
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}

func newPaymentProvider(cfg models.PaymentConfig) payments.PaymentProvider {
	if cfg.Provider == "http" {
		logger.Info("Using HTTP payment provider", logger.String("url", cfg.ProviderURL))
		return paymentgw.NewHTTPProvider(cfg)
	}
	logger.Info("Using simulated payment provider", logger.Int64("decline_above_cents", cfg.DeclineAboveCent))
	return paymentgw.NewSimulatedProvider(cfg.DeclineAboveCent)
}
