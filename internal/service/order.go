package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopeasy/shopeasy/internal/domain"
	"github.com/shopeasy/shopeasy/internal/events"
)

type orderService struct {
	orders    domain.OrderStore
	publisher events.Publisher
	logger    *slog.Logger
}

// NewOrderService creates a new OrderService instance
func NewOrderService(orders domain.OrderStore, publisher events.Publisher, logger *slog.Logger) domain.OrderService {
	return &orderService{
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// GetOrder enforces ownership. An order is visible to its buyer and to
// admins, and nobody else.
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID, requester *domain.User) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != requester.ID && !requester.IsAdmin() {
		return nil, domain.Forbidden("order.get", "You do not have access to this order")
	}

	return order, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListOrders(ctx context.Context, page int) (*domain.OrderListPage, error) {
	if page < 1 {
		page = 1
	}
	result, err := s.orders.ListAll(ctx, page, DefaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return result, nil
}

// MarkPaid records a payment. Marking an already paid order overwrites the
// previous payment result, which keeps retried payment callbacks harmless.
func (s *orderService) MarkPaid(ctx context.Context, orderID uuid.UUID, result json.RawMessage) (*domain.Order, error) {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}

	if err := s.orders.MarkPaid(ctx, orderID, time.Now(), result); err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Event delivery is best effort, same as order creation.
	if err := s.publisher.PublishOrderPaid(ctx, order); err != nil {
		s.logger.Warn("failed to publish order paid event",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()))
	}

	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if _, err := domain.ParseOrderStatus(string(status)); err != nil {
		return nil, err
	}

	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}

	var deliveredAt *time.Time
	if status == domain.OrderStatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status, deliveredAt); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return s.orders.GetByID(ctx, orderID)
}
