// Package events publishes order lifecycle events to a message broker so
// downstream consumers (fulfillment, email) can react without coupling to
// the API process.
package events

import (
	"context"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// Publisher emits order lifecycle events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	// PublishOrderCreated announces a newly placed order.
	PublishOrderCreated(ctx context.Context, order *domain.Order) error

	// PublishOrderPaid announces a confirmed payment on an order.
	PublishOrderPaid(ctx context.Context, order *domain.Order) error

	// Close releases broker resources.
	Close() error
}

// OrderCreatedEvent is the wire payload for a new order.
type OrderCreatedEvent struct {
	OrderID    string `json:"order_id"`
	UserID     string `json:"user_id"`
	TotalCents int64  `json:"total_cents"`
	ItemCount  int    `json:"item_count"`
	CreatedAt  string `json:"created_at"`
}

// OrderPaidEvent is the wire payload for a payment confirmation.
type OrderPaidEvent struct {
	OrderID    string `json:"order_id"`
	UserID     string `json:"user_id"`
	TotalCents int64  `json:"total_cents"`
	PaidAt     string `json:"paid_at"`
}
