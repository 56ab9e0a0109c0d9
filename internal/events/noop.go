package events

import (
	"context"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// NoopPublisher discards events. Used when no broker is configured and in
// tests.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	return nil
}

func (NoopPublisher) PublishOrderPaid(ctx context.Context, order *domain.Order) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
