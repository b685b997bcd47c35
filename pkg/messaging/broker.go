package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Ping(ctx context.Context) error
	Close() error
}

// NoopBroker discards every message. Used when no broker is configured.
type NoopBroker struct{}

func (NoopBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (NoopBroker) Ping(ctx context.Context) error {
	return nil
}

func (NoopBroker) Close() error {
	return nil
}
