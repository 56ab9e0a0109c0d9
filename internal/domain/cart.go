package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Item not found in cart"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrEmptyCart        = &Error{Code: EINVALID, Message: "Cart is empty"}
)

// =============================================================================
// CART DOMAIN TYPES
// =============================================================================

// Cart is one user's cart with its items. Each user has at most one cart.
type Cart struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalCents is the sum of line subtotals. Totals are always derived from
// the items, never stored.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.SubtotalCents()
	}
	return total
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int32 {
	var n int32
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// CartItem is a cart line. Name, price, and image are captured from the
// product at the time the line was added.
type CartItem struct {
	ProductID      uuid.UUID
	Name           string
	Quantity       int32
	UnitPriceCents int64
	ImageURL       string
}

// SubtotalCents is the line total.
func (i *CartItem) SubtotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// CartStore provides persistence for user carts.
type CartStore interface {
	// GetOrCreate returns the user's cart, creating an empty one if none exists.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// AddItem adds a line to the cart. If the product is already present the
	// quantities are merged into the existing line.
	AddItem(ctx context.Context, cartID uuid.UUID, item CartItem) error

	// SetItemQuantity replaces the quantity of an existing line.
	// Returns ErrCartItemNotFound if the product is not in the cart.
	SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int32) error

	// RemoveItem deletes a line from the cart. Removing a product that is
	// not in the cart is not an error.
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error

	// Clear removes all lines from the cart.
	Clear(ctx context.Context, cartID uuid.UUID) error
}

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// CartService provides business logic for shopping cart operations.
type CartService interface {
	// GetCart returns the user's cart with derived totals.
	GetCart(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// AddItem validates the product and quantity, then adds or merges a line.
	// The stock check covers the merged line quantity. Returns the updated cart.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*Cart, error)

	// UpdateItemQuantity sets an existing line to the given quantity.
	// Quantities below one are rejected; removal goes through RemoveItem.
	UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*Cart, error)

	// RemoveItem removes a line from the user's cart. Removing an absent
	// line is a no-op, not an error.
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*Cart, error)

	// ClearCart removes every line from the user's cart.
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
