package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopeasy/shopeasy/internal/domain"
)

type cartService struct {
	carts    domain.CartStore
	products domain.ProductStore
}

// NewCartService creates a new CartService instance
func NewCartService(carts domain.CartStore, products domain.ProductStore) domain.CartService {
	return &cartService{carts: carts, products: products}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// AddItem captures the product's current name, price, and image on the line.
// If the product is already in the cart the quantities are merged and the
// snapshot is refreshed. The stock check runs against the merged quantity,
// so repeated adds cannot grow a line past what is on the shelf.
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	merged := quantity
	for _, line := range cart.Items {
		if line.ProductID == productID {
			merged += line.Quantity
			break
		}
	}
	if !product.InStock(merged) {
		return nil, domain.InsufficientStock(product.Name, product.Stock)
	}

	imageURL := ""
	if len(product.Images) > 0 {
		imageURL = product.Images[0]
	}

	item := domain.CartItem{
		ProductID:      product.ID,
		Name:           product.Name,
		Quantity:       quantity,
		UnitPriceCents: product.PriceCents,
		ImageURL:       imageURL,
	}
	if err := s.carts.AddItem(ctx, cart.ID, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return s.carts.GetOrCreate(ctx, userID)
}

// UpdateItemQuantity replaces a line's quantity. Removal goes through
// RemoveItem; a quantity below one is rejected rather than treated as a
// removal request.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock(quantity) {
		return nil, domain.InsufficientStock(product.Name, product.Stock)
	}

	if err := s.carts.SetItemQuantity(ctx, cart.ID, productID, quantity); err != nil {
		if errors.Is(err, domain.ErrCartItemNotFound) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.carts.GetOrCreate(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if err := s.carts.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}

	return s.carts.GetOrCreate(ctx, userID)
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get cart: %w", err)
	}
	if err := s.carts.Clear(ctx, cart.ID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
