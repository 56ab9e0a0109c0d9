package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ORDER DOMAIN ERRORS
// =============================================================================

var (
	ErrOrderNotFound      = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrInsufficientStock  = &Error{Code: EINVALID, Message: "Insufficient stock"}
	ErrInvalidOrderStatus = &Error{Code: EINVALID, Message: "Invalid order status"}
)

// InsufficientStock builds a per-product stock error. It wraps
// ErrInsufficientStock so callers can match with errors.Is.
func InsufficientStock(name string, available int32) *Error {
	return &Error{
		Code:    EINVALID,
		Message: fmt.Sprintf("Not enough %s in stock. Available: %d", name, available),
		Err:     ErrInsufficientStock,
	}
}

// =============================================================================
// ORDER DOMAIN TYPES
// =============================================================================

// OrderStatus tracks fulfillment, not payment. Payment is tracked separately
// via IsPaid so an order can be paid but not yet shipped.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return OrderStatus(s), nil
	}
	return "", &Error{Code: EINVALID, Message: fmt.Sprintf("Invalid order status: %q", s), Err: ErrInvalidOrderStatus}
}

// Pricing rules applied at checkout. Tax is charged on the item subtotal and
// rounded half up to the cent. Shipping is free above the threshold,
// otherwise a flat rate applies.
const (
	TaxRateBasisPoints         = 1500  // 15%
	FreeShippingThresholdCents = 10000 // strictly greater than $100 ships free
	FlatShippingCents          = 1000
)

// TaxCents computes tax on an item subtotal, rounding half up.
func TaxCents(itemsCents int64) int64 {
	return (itemsCents*TaxRateBasisPoints + 5000) / 10000
}

// ShippingCents computes the shipping charge for an item subtotal.
func ShippingCents(itemsCents int64) int64 {
	if itemsCents > FreeShippingThresholdCents {
		return 0
	}
	return FlatShippingCents
}

// ShippingAddress is the destination captured on an order.
type ShippingAddress struct {
	AddressLine1 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// OrderItem is an immutable snapshot of a cart line at checkout time.
// Later product edits never change what an order shows.
type OrderItem struct {
	ProductID      uuid.UUID
	Name           string
	Quantity       int32
	UnitPriceCents int64
	ImageURL       string
}

// SubtotalCents is the line total.
func (i *OrderItem) SubtotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// Order is a completed checkout.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   string

	// Price breakdown, all in cents.
	ItemsCents    int64
	TaxCents      int64
	ShippingCents int64
	TotalCents    int64

	// Payment tracking.
	IsPaid        bool
	PaidAt        *time.Time
	PaymentResult json.RawMessage

	// Fulfillment tracking.
	Status      OrderStatus
	IsDelivered bool
	DeliveredAt *time.Time

	CreatedAt time.Time
}

// CheckoutParams is the buyer's input to checkout. Everything else on the
// order is derived from the cart and the pricing rules.
type CheckoutParams struct {
	ShippingAddress ShippingAddress
	PaymentMethod   string
}

// OrderListPage is one page of orders with the total count.
type OrderListPage struct {
	Orders     []Order
	TotalCount int64
	Page       int
	PageSize   int
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// OrderStore provides persistence for orders.
type OrderStore interface {
	// CreateFromCheckout atomically reserves stock for every line, inserts
	// the order, and clears the source cart in one transaction. If any line
	// cannot be reserved the whole operation rolls back and
	// ErrInsufficientStock is returned.
	CreateFromCheckout(ctx context.Context, order *Order, cartID uuid.UUID) error

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListByUser returns a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// ListAll returns a page of all orders, newest first.
	ListAll(ctx context.Context, page, pageSize int) (*OrderListPage, error)

	// MarkPaid records a payment against an order.
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time, result json.RawMessage) error

	// UpdateStatus sets the fulfillment status. Delivered also stamps the
	// delivery time.
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus, deliveredAt *time.Time) error
}

// =============================================================================
// SERVICE INTERFACES
// =============================================================================

// CheckoutService converts a cart into an order.
type CheckoutService interface {
	// Checkout validates the user's cart, prices it, reserves stock, and
	// creates the order. The cart is emptied on success.
	Checkout(ctx context.Context, userID uuid.UUID, params CheckoutParams) (*Order, error)
}

// OrderService provides business logic for order retrieval and updates.
type OrderService interface {
	// GetOrder retrieves an order. Non-admin callers may only read their own.
	GetOrder(ctx context.Context, orderID uuid.UUID, requester *User) (*Order, error)

	// ListMyOrders returns the requesting user's orders, newest first.
	ListMyOrders(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// ListOrders returns a page of all orders for admin review.
	ListOrders(ctx context.Context, page int) (*OrderListPage, error)

	// MarkPaid records a successful payment on an order.
	MarkPaid(ctx context.Context, orderID uuid.UUID, result json.RawMessage) (*Order, error)

	// UpdateStatus moves an order's fulfillment status.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) (*Order, error)
}
