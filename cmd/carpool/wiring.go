package main

import (
	"context"
	"fmt"

	"github.com/piresc/carpool/internal/pkg/database"
	"github.com/piresc/carpool/internal/pkg/eventbus"
	"github.com/piresc/carpool/internal/pkg/health"
	"github.com/piresc/carpool/internal/pkg/lock"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/memstore"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/internal/pkg/nats"
	"github.com/piresc/carpool/internal/pkg/nsq"
	"github.com/piresc/carpool/internal/pkg/server"
	"github.com/piresc/carpool/services/bookings"
	bookingrepo "github.com/piresc/carpool/services/bookings/repository"
	"github.com/piresc/carpool/services/inventory"
	inventoryrepo "github.com/piresc/carpool/services/inventory/repository"
	"github.com/piresc/carpool/services/payments"
	paymentrepo "github.com/piresc/carpool/services/payments/repository"
	"github.com/piresc/carpool/services/query"
	queryrepo "github.com/piresc/carpool/services/query/repository"
	"github.com/piresc/carpool/services/trips"
	triprepo "github.com/piresc/carpool/services/trips/repository"
)

// storage groups the repositories of one storage driver
type storage struct {
	inventory inventory.InventoryRepo
	bookings  bookings.BookingRepo
	payments  payments.PaymentRepo
	trips     trips.TripRepo
	query     query.QueryRepo
}

func newStorage(cfg *models.Config, shutdown *server.ShutdownManager, hs *health.HealthService) (*storage, error) {
	switch cfg.Storage.Driver {
	case "memory":
		store := memstore.New()
		hs.AddChecker("memstore", health.NewPingChecker(store))
		return &storage{
			inventory: store,
			bookings:  store,
			payments:  store,
			trips:     store,
			query:     store,
		}, nil
	case "postgres":
		postgresClient, err := database.NewPostgresClient(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		shutdown.Register("postgres", func(context.Context) error { return postgresClient.Close() })
		hs.AddChecker("postgres", health.NewPingChecker(postgresClient))

		db := postgresClient.GetDB()
		return &storage{
			inventory: inventoryrepo.NewInventoryRepository(cfg, db),
			bookings:  bookingrepo.NewBookingRepository(cfg, db),
			payments:  paymentrepo.NewPaymentRepository(cfg, db),
			trips:     triprepo.NewTripRepository(cfg, db),
			query:     queryrepo.NewQueryRepository(cfg, db),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newLocker(cfg *models.Config, redisClient *database.RedisClient) (lock.Locker, error) {
	switch cfg.Lock.Driver {
	case "local":
		return lock.NewLocalLocker(), nil
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis locker requires a redis client")
		}
		return lock.NewRedisLocker(redisClient, cfg.Lock.TTL, cfg.Lock.RetryBackoff, cfg.Lock.MaxBackoff), nil
	default:
		return nil, fmt.Errorf("unknown lock driver %q", cfg.Lock.Driver)
	}
}

// eventBus is the publisher side of the configured broker plus a way to
// attach consumers to it
type eventBus struct {
	publisher eventbus.Publisher
	subscribe func(ctx context.Context, subject string, handler eventbus.Handler) error
}

func newEventBus(ctx context.Context, cfg *models.Config, shutdown *server.ShutdownManager, hs *health.HealthService) (*eventBus, error) {
	switch cfg.EventBus.Driver {
	case "nats":
		return newNATSBus(ctx, cfg, shutdown, hs)
	case "nsq":
		return newNSQBus(cfg, shutdown, hs)
	case "none":
		logger.Warn("Event bus disabled; domain events are dropped and provider results only arrive over HTTP")
		return &eventBus{
			publisher: eventbus.Noop{},
			subscribe: func(context.Context, string, eventbus.Handler) error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown event bus %q", cfg.EventBus.Driver)
	}
}

func newNATSBus(ctx context.Context, cfg *models.Config, shutdown *server.ShutdownManager, hs *health.HealthService) (*eventBus, error) {
	client, err := nats.NewClient(cfg.NATS.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS with JetStream: %w", err)
	}
	shutdown.Register("nats", func(context.Context) error {
		client.Close()
		return nil
	})
	hs.AddChecker("nats", health.NewConnectionChecker("nats", client))

	if err := client.EnsureStream(ctx, nats.CarpoolStreamConfig()); err != nil {
		return nil, err
	}
	logger.Info("JetStream client initialized successfully",
		logger.String("url", cfg.NATS.URL),
		logger.Bool("connected", client.IsConnected()))

	return &eventBus{
		publisher: nats.NewProducer(client),
		subscribe: func(ctx context.Context, subject string, handler eventbus.Handler) error {
			consumerCfg := nats.SettlementConsumerConfig()
			consumerCfg.FilterSubject = subject
			consumer, err := nats.NewConsumer(ctx, client, consumerCfg, handler)
			if err != nil {
				return err
			}
			shutdown.Register("nats-consumer-"+subject, func(context.Context) error {
				consumer.Stop()
				return nil
			})
			return nil
		},
	}, nil
}

func newNSQBus(cfg *models.Config, shutdown *server.ShutdownManager, hs *health.HealthService) (*eventBus, error) {
	producer, err := nsq.NewProducer(cfg.NSQ.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}
	shutdown.Register("nsq-producer", func(context.Context) error {
		producer.Stop()
		return nil
	})
	hs.AddChecker("nsq", health.CheckerFunc(func(context.Context) error { return producer.Ping() }))

	return &eventBus{
		publisher: producer,
		subscribe: func(_ context.Context, subject string, handler eventbus.Handler) error {
			consumer, err := nsq.NewConsumer(subject, "bookings", cfg.NSQ.Address, handler)
			if err != nil {
				return err
			}
			shutdown.Register("nsq-consumer-"+subject, func(context.Context) error {
				consumer.Stop()
				return nil
			})
			return nil
		},
	}, nil
}
