package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	subjects []string
	last     interface{}
	err      error
}

func (r *recordingPublisher) Publish(_ context.Context, subject string, message interface{}) error {
	r.subjects = append(r.subjects, subject)
	r.last = message
	return r.err
}

func TestBookingGW_Subjects(t *testing.T) {
	pub := &recordingPublisher{}
	gw := NewBookingGW(pub)
	b := &models.Booking{ID: uuid.New(), TripID: uuid.New(), Seats: 2, UnitPrice: 1000, Status: models.BookingStatusExpired, CancelReason: models.CancelReasonHoldExpired}
	ctx := context.Background()

	require.NoError(t, gw.PublishBookingCreated(ctx, b))
	require.NoError(t, gw.PublishBookingConfirmed(ctx, b))
	require.NoError(t, gw.PublishBookingCancelled(ctx, b))
	require.NoError(t, gw.PublishBookingExpired(ctx, b))

	assert.Equal(t, []string{
		constants.SubjectBookingCreated,
		constants.SubjectBookingConfirmed,
		constants.SubjectBookingCancelled,
		constants.SubjectBookingExpired,
	}, pub.subjects)

	ev, ok := pub.last.(models.BookingEvent)
	require.True(t, ok)
	assert.Equal(t, int64(2000), ev.Amount)
	assert.Equal(t, models.CancelReasonHoldExpired, ev.CancelReason)
}

func TestBookingGW_PublishError(t *testing.T) {
	gw := NewBookingGW(&recordingPublisher{err: errors.New("nats: no responders")})

	err := gw.PublishBookingCreated(context.Background(), &models.Booking{ID: uuid.New()})
	assert.ErrorContains(t, err, "no responders")
}
