package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopeasy/shopeasy/internal/domain"
	"github.com/shopeasy/shopeasy/internal/events"
)

type checkoutService struct {
	carts     domain.CartStore
	orders    domain.OrderStore
	publisher events.Publisher
	logger    *slog.Logger
}

// NewCheckoutService creates a new CheckoutService instance
func NewCheckoutService(carts domain.CartStore, orders domain.OrderStore, publisher events.Publisher, logger *slog.Logger) domain.CheckoutService {
	return &checkoutService{
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// Checkout prices the user's cart and converts it into an order.
//
// Order item snapshots come from the cart lines, so the buyer pays the price
// they saw when they added the item. Stock reservation, order insertion, and
// cart clearing happen in a single store transaction. A failed reservation on
// any line aborts the whole checkout with nothing written.
func (s *checkoutService) Checkout(ctx context.Context, userID uuid.UUID, params domain.CheckoutParams) (*domain.Order, error) {
	if err := validateCheckoutParams(params); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	var itemsCents int64
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID:      line.ProductID,
			Name:           line.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			ImageURL:       line.ImageURL,
		})
		itemsCents += line.SubtotalCents()
	}

	taxCents := domain.TaxCents(itemsCents)
	shippingCents := domain.ShippingCents(itemsCents)

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: params.ShippingAddress,
		PaymentMethod:   params.PaymentMethod,
		ItemsCents:      itemsCents,
		TaxCents:        taxCents,
		ShippingCents:   shippingCents,
		TotalCents:      itemsCents + taxCents + shippingCents,
		Status:          domain.OrderStatusPending,
		CreatedAt:       time.Now(),
	}

	if err := s.orders.CreateFromCheckout(ctx, order, cart.ID); err != nil {
		return nil, err
	}

	// Event delivery is best effort. The order is already committed, so a
	// broker outage must not fail the checkout.
	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Warn("failed to publish order created event",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()))
	}

	return order, nil
}

func validateCheckoutParams(params domain.CheckoutParams) error {
	var err error
	addr := params.ShippingAddress
	if strings.TrimSpace(addr.AddressLine1) == "" {
		err = domain.AddFieldError(err, "address", "Address is required")
	}
	if strings.TrimSpace(addr.City) == "" {
		err = domain.AddFieldError(err, "city", "City is required")
	}
	if strings.TrimSpace(addr.PostalCode) == "" {
		err = domain.AddFieldError(err, "postalCode", "Postal code is required")
	}
	if strings.TrimSpace(addr.Country) == "" {
		err = domain.AddFieldError(err, "country", "Country is required")
	}
	if strings.TrimSpace(params.PaymentMethod) == "" {
		err = domain.AddFieldError(err, "paymentMethod", "Payment method is required")
	}
	if err != nil {
		if ve, ok := err.(*domain.ValidationError); ok {
			ve.Op = "checkout"
		}
		return err
	}
	return nil
}
