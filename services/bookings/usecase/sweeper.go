package usecase

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/carpool/internal/pkg/logger"
	nrpkg "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/services/bookings"
)

// Sweeper expires stale pending bookings on a fixed interval
type Sweeper struct {
	bookingUC bookings.BookingUC
	interval  time.Duration
	nrApp     *newrelic.Application
}

// NewSweeper creates a sweeper. nrApp may be nil.
func NewSweeper(bookingUC bookings.BookingUC, interval time.Duration, nrApp *newrelic.Application) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		bookingUC: bookingUC,
		interval:  interval,
		nrApp:     nrApp,
	}
}

// Run sweeps until ctx is done
func (s *Sweeper) Run(ctx context.Context) {
	logger.Info("Booking expiry sweeper started", logger.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Booking expiry sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	txnCtx, end := nrpkg.StartBackgroundTransaction(ctx, s.nrApp, "Bookings.ExpireStale")
	n, err := s.bookingUC.ExpireStale(txnCtx)
	end(err)
	if err != nil && ctx.Err() == nil {
		logger.Error("Booking expiry sweep failed", logger.Err(err))
		return
	}
	if n > 0 {
		logger.Debug("Booking expiry sweep finished", logger.Int("expired", n))
	}
}
