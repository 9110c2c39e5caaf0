package domain

import (
	"context"
	"time"
)

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(ctx context.Context, topic string, msgs ...Message) error
}

// EventPublisher emits domain events after the corresponding write has committed.
type EventPublisher interface {
	PublishSaleRecorded(ctx context.Context, sale *Sale) error
	PublishPaymentCreated(ctx context.Context, payment *CommissionPayment) error
}

// Locker guards operations that must not run concurrently across replicas.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}
