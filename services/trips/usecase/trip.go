package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/lock"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/bookings"
	"github.com/piresc/carpool/services/inventory"
	"github.com/piresc/carpool/services/trips"
	"github.com/sourcegraph/conc/pool"
)

const defaultCancelWorkers = 8

// tripUC implements trips.TripUC
type tripUC struct {
	cfg       *models.Config
	repo      trips.TripRepo
	inventory inventory.InventoryUC
	bookings  bookings.BookingUC
	locker    lock.Locker
	tripGW    trips.TripGW
	nowFn     func() time.Time
}

// NewTripUC creates a new trip use case
func NewTripUC(
	cfg *models.Config,
	repo trips.TripRepo,
	inventoryUC inventory.InventoryUC,
	bookingUC bookings.BookingUC,
	locker lock.Locker,
	tripGW trips.TripGW,
) (trips.TripUC, error) {
	if locker == nil {
		return nil, errors.New("locker is required")
	}
	return &tripUC{
		cfg:       cfg,
		repo:      repo,
		inventory: inventoryUC,
		bookings:  bookingUC,
		locker:    locker,
		tripGW:    tripGW,
		nowFn:     time.Now,
	}, nil
}

// AddVehicle registers a vehicle for a driver
func (uc *tripUC) AddVehicle(ctx context.Context, req models.AddVehicleRequest) (*models.Vehicle, error) {
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("vehicle capacity %d: %w", req.Capacity, models.ErrInvalidCapacity)
	}
	if strings.TrimSpace(req.Registration) == "" {
		return nil, fmt.Errorf("registration is required: %w", models.ErrInvalidInput)
	}

	vehicle := &models.Vehicle{
		ID:           uuid.New(),
		DriverID:     req.DriverID,
		Registration: strings.TrimSpace(req.Registration),
		Model:        strings.TrimSpace(req.Model),
		Capacity:     req.Capacity,
		CreatedAt:    uc.nowFn(),
	}
	if err := uc.repo.CreateVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	logger.InfoCtx(ctx, "Vehicle added",
		logger.UUID("vehicle_id", vehicle.ID),
		logger.UUID("driver_id", vehicle.DriverID),
		logger.Int("capacity", vehicle.Capacity))
	return vehicle, nil
}

// ListVehicles returns the vehicles of a driver
func (uc *tripUC) ListVehicles(ctx context.Context, driverID uuid.UUID) ([]*models.Vehicle, error) {
	return uc.repo.ListVehiclesByDriver(ctx, driverID)
}

// CreateTrip offers seats on one of the driver's vehicles and seeds the
// trip's seat ledger.
func (uc *tripUC) CreateTrip(ctx context.Context, req models.CreateTripRequest) (*models.Trip, error) {
	source := utils.NormalizePlace(req.Source)
	destination := utils.NormalizePlace(req.Destination)
	if source == "" || destination == "" {
		return nil, fmt.Errorf("source and destination are required: %w", models.ErrInvalidInput)
	}
	if req.PricePerSeat < 0 {
		return nil, fmt.Errorf("price %d: %w", req.PricePerSeat, models.ErrInvalidInput)
	}

	vehicle, err := uc.repo.GetVehicle(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("vehicle %s: %w", req.VehicleID, models.ErrVehicleNotOwned)
		}
		return nil, err
	}
	if vehicle.DriverID != req.DriverID {
		return nil, fmt.Errorf("vehicle %s: %w", vehicle.ID, models.ErrVehicleNotOwned)
	}
	if req.Seats <= 0 || req.Seats > vehicle.Capacity {
		return nil, fmt.Errorf("%d seats on a vehicle of %d: %w", req.Seats, vehicle.Capacity, models.ErrInvalidCapacity)
	}

	now := uc.nowFn()
	trip := &models.Trip{
		ID:            uuid.New(),
		DriverID:      req.DriverID,
		VehicleID:     vehicle.ID,
		Source:        source,
		Destination:   destination,
		DepartureTime: req.DepartureTime,
		TotalSeats:    req.Seats,
		PricePerSeat:  req.PricePerSeat,
		Status:        models.TripStatusScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.CreateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	if err := uc.inventory.Seed(ctx, trip.ID, trip.TotalSeats); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Trip created",
		logger.UUID("trip_id", trip.ID),
		logger.UUID("driver_id", trip.DriverID),
		logger.Int("seats", trip.TotalSeats),
		logger.Int64("price_per_seat", trip.PricePerSeat))
	uc.publish(ctx, trip, uc.tripGW.PublishTripCreated)
	return trip, nil
}

// CancelTrip cancels a scheduled trip and every pending or confirmed booking
// on it. Once the status has flipped the call succeeds: later failures are
// reported, never returned, and a repeated call retries what is left.
func (uc *tripUC) CancelTrip(ctx context.Context, tripID, driverID uuid.UUID) (*models.TripCancellation, error) {
	report, active, err := uc.close(ctx, tripID, driverID, models.TripStatusCancelled)
	if err != nil {
		return nil, err
	}
	uc.cancelAll(ctx, report, active)

	logger.InfoCtx(ctx, "Trip cancelled",
		logger.UUID("trip_id", report.Trip.ID),
		logger.Int("cancelled", len(report.Cancelled)),
		logger.Int("refunded", len(report.Refunded)),
		logger.Int("failed", len(report.Failures)+len(report.StepFailures)))
	uc.publish(ctx, report.Trip, uc.tripGW.PublishTripCancelled)
	return report, nil
}

// CompleteTrip marks a trip as driven. Riders who never paid lose their hold;
// confirmed bookings stay confirmed.
func (uc *tripUC) CompleteTrip(ctx context.Context, tripID, driverID uuid.UUID) (*models.TripCancellation, error) {
	report, active, err := uc.close(ctx, tripID, driverID, models.TripStatusCompleted)
	if err != nil {
		return nil, err
	}
	pending := make([]*models.Booking, 0, len(active))
	for _, b := range active {
		if b.Status == models.BookingStatusPendingPayment {
			pending = append(pending, b)
		}
	}
	uc.cancelAll(ctx, report, pending)

	logger.InfoCtx(ctx, "Trip completed",
		logger.UUID("trip_id", report.Trip.ID),
		logger.Int("unpaid_cancelled", len(report.Cancelled)),
		logger.Int("failed", len(report.Failures)+len(report.StepFailures)))
	uc.publish(ctx, report.Trip, uc.tripGW.PublishTripCompleted)
	return report, nil
}

// GetTrip returns a trip by id
func (uc *tripUC) GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	return uc.repo.GetTrip(ctx, tripID)
}

// ListDriverTrips returns all trips of a driver
func (uc *tripUC) ListDriverTrips(ctx context.Context, driverID uuid.UUID) ([]*models.Trip, error) {
	return uc.repo.ListTripsByDriver(ctx, driverID)
}

// close moves a scheduled trip to a terminal status under the trip lock,
// freezes its ledger and lists the bookings still active. Closing again with
// the same status is accepted so an interrupted cascade can be resumed. Only
// a failed status change is returned as an error.
func (uc *tripUC) close(ctx context.Context, tripID, driverID uuid.UUID, next models.TripStatus) (*models.TripCancellation, []*models.Booking, error) {
	unlock, err := uc.locker.Lock(ctx, lock.TripKey(tripID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock trip %s: %w", tripID, err)
	}

	trip, err := uc.transition(ctx, tripID, driverID, next)
	unlock()
	if err != nil {
		return nil, nil, err
	}

	report := &models.TripCancellation{
		Trip:         trip,
		Cancelled:    []uuid.UUID{},
		Refunded:     []uuid.UUID{},
		Failures:     []models.BookingFailure{},
		StepFailures: []models.StepFailure{},
	}

	// Freeze takes the trip lock itself
	if err := uc.inventory.Freeze(ctx, trip.ID); err != nil {
		uc.stepFailed(ctx, report, models.StepFreezeLedger, err)
	}

	active, err := uc.bookings.ListActiveByTrip(ctx, trip.ID)
	if err != nil {
		uc.stepFailed(ctx, report, models.StepListBookings, err)
		return report, nil, nil
	}
	return report, active, nil
}

func (uc *tripUC) stepFailed(ctx context.Context, report *models.TripCancellation, step string, err error) {
	logger.WarnCtx(ctx, "Trip close step failed",
		logger.UUID("trip_id", report.Trip.ID),
		logger.String("step", step),
		logger.Err(err))
	report.StepFailures = append(report.StepFailures, models.StepFailure{
		Step:   step,
		Kind:   models.ErrorKind(err),
		Reason: err.Error(),
	})
}

func (uc *tripUC) transition(ctx context.Context, tripID, driverID uuid.UUID, next models.TripStatus) (*models.Trip, error) {
	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.DriverID != driverID {
		return nil, fmt.Errorf("driver %s on trip %s: %w", driverID, trip.ID, models.ErrNotAuthorized)
	}
	if trip.Status == next {
		return trip, nil
	}
	if err := trip.Transition(next, uc.nowFn()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}
	return trip, nil
}

// cancelAll cancels bookings through a bounded worker pool and adds the
// outcomes to report. Each booking serializes on its own lock, so the order
// is free.
func (uc *tripUC) cancelAll(ctx context.Context, report *models.TripCancellation, active []*models.Booking) {
	trip := report.Trip
	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(uc.cancelWorkers())
	for _, b := range active {
		bookingID := b.ID
		p.Go(func() {
			refunded, err := uc.bookings.CancelForTrip(ctx, bookingID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.WarnCtx(ctx, "Failed to cancel booking of closed trip",
					logger.UUID("trip_id", trip.ID),
					logger.UUID("booking_id", bookingID),
					logger.Err(err))
				report.Failures = append(report.Failures, models.BookingFailure{
					BookingID: bookingID,
					Kind:      models.ErrorKind(err),
					Reason:    err.Error(),
				})
				return
			}
			report.Cancelled = append(report.Cancelled, bookingID)
			if refunded {
				report.Refunded = append(report.Refunded, bookingID)
			}
		})
	}
	p.Wait()
}

func (uc *tripUC) publish(ctx context.Context, trip *models.Trip, fn func(context.Context, *models.Trip) error) {
	if err := fn(ctx, trip); err != nil {
		logger.WarnCtx(ctx, "Failed to publish trip event",
			logger.UUID("trip_id", trip.ID),
			logger.String("status", string(trip.Status)),
			logger.Err(err))
	}
}

func (uc *tripUC) cancelWorkers() int {
	if uc.cfg == nil || uc.cfg.Trips.CancelWorkers <= 0 {
		return defaultCancelWorkers
	}
	return uc.cfg.Trips.CancelWorkers
}
