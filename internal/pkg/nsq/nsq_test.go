package nsq

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/eventbus"
	"github.com/stretchr/testify/assert"
)

type fakeProducer struct {
	topic string
	body  []byte
	err   error
}

func (f *fakeProducer) Publish(topic string, body []byte) error {
	f.topic, f.body = topic, body
	return f.err
}
func (f *fakeProducer) Ping() error { return f.err }
func (f *fakeProducer) Stop()       {}

func TestNewProducer_Unreachable(t *testing.T) {
	producer, err := NewProducer("127.0.0.1:1")
	assert.Error(t, err)
	assert.Nil(t, producer)
}

func TestProducer_Publish(t *testing.T) {
	fp := &fakeProducer{}
	p := &Producer{producer: fp}

	err := p.Publish(context.Background(), constants.SubjectTripCancelled, map[string]string{"trip_id": "t1"})

	assert.NoError(t, err)
	assert.Equal(t, constants.SubjectTripCancelled, fp.topic)
	assert.JSONEq(t, `{"trip_id":"t1"}`, string(fp.body))
}

func TestProducer_PublishFailures(t *testing.T) {
	p := &Producer{producer: &fakeProducer{err: errors.New("nsqd gone")}}
	assert.Error(t, p.Publish(context.Background(), constants.SubjectTripCancelled, struct{}{}))
	assert.Error(t, p.Ping())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, (&Producer{producer: &fakeProducer{}}).Publish(ctx, "x", struct{}{}), context.Canceled)
}

func TestMessageHandler(t *testing.T) {
	msg := nsq.NewMessage(nsq.MessageID{}, []byte(`{"settled":true}`))

	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "processed", err: nil},
		{name: "transient is requeued", err: errors.New("timeout"), wantErr: true},
		{name: "poison is finished", err: fmt.Errorf("bad json: %w", eventbus.ErrPoison)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := messageHandler(context.Background(), constants.SubjectPaymentProviderResult,
				func(_ context.Context, subject string, data []byte) error {
					assert.Equal(t, constants.SubjectPaymentProviderResult, subject)
					assert.Equal(t, msg.Body, data)
					return tt.err
				})

			err := h.HandleMessage(msg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
