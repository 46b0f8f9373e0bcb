package nats

import (
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/carpool/internal/pkg/constants"
)

// StreamConfig describes a JetStream stream
type StreamConfig struct {
	Name      string
	Subjects  []string
	Retention jetstream.RetentionPolicy
	Storage   jetstream.StorageType
	Replicas  int
	MaxAge    time.Duration
	MaxBytes  int64
	Discard   jetstream.DiscardPolicy
}

func (s StreamConfig) toJetStream() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:      s.Name,
		Subjects:  s.Subjects,
		Retention: s.Retention,
		Storage:   s.Storage,
		Replicas:  s.Replicas,
		MaxAge:    s.MaxAge,
		MaxBytes:  s.MaxBytes,
		Discard:   s.Discard,
	}
}

// ConsumerConfig describes a durable JetStream consumer
type ConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	FilterSubject string
	DeliverPolicy jetstream.DeliverPolicy
	AckPolicy     jetstream.AckPolicy
	AckWait       time.Duration
	MaxDeliver    int
	MaxAckPending int
}

func (c ConsumerConfig) toJetStream() jetstream.ConsumerConfig {
	return jetstream.ConsumerConfig{
		Durable:       c.ConsumerName,
		FilterSubject: c.FilterSubject,
		DeliverPolicy: c.DeliverPolicy,
		AckPolicy:     c.AckPolicy,
		AckWait:       c.AckWait,
		MaxDeliver:    c.MaxDeliver,
		MaxAckPending: c.MaxAckPending,
	}
}

// CarpoolStreamConfig holds every trip, booking and payment event
func CarpoolStreamConfig() StreamConfig {
	return StreamConfig{
		Name:      constants.StreamCarpool,
		Subjects:  []string{"trip.>", "booking.>", "payment.>"},
		Retention: jetstream.LimitsPolicy,
		Storage:   jetstream.FileStorage,
		Replicas:  1,
		MaxAge:    7 * 24 * time.Hour,
		MaxBytes:  1024 * 1024 * 1024,
		Discard:   jetstream.DiscardOld,
	}
}

// SettlementConsumerConfig reads asynchronous payment provider outcomes
func SettlementConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		StreamName:    constants.StreamCarpool,
		ConsumerName:  constants.ConsumerBookingSettlement,
		FilterSubject: constants.SubjectPaymentProviderResult,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       30 * time.Second,
		MaxDeliver:    5,
		MaxAckPending: 256,
	}
}
