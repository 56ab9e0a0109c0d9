package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// CartStore implements domain.CartStore using PostgreSQL. Carts are keyed
// one per user; lines live in cart_items with a (cart_id, product_id)
// primary key.
type CartStore struct {
	pool *pgxpool.Pool
}

var _ domain.CartStore = (*CartStore)(nil)

// NewCartStore creates a new PostgreSQL-backed cart store.
func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

func (s *CartStore) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	var cart domain.Cart
	err := s.pool.QueryRow(ctx, `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, created_at, updated_at`,
		userID,
	).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, domain.Internal(err, "cart.get_or_create", "failed to get cart")
	}

	items, err := loadCartItems(ctx, s.pool, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

func loadCartItems(ctx context.Context, db pgxQuerier, cartID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := db.Query(ctx, `
		SELECT product_id, name, quantity, unit_price_cents, image_url
		FROM cart_items WHERE cart_id = $1
		ORDER BY added_at`,
		cartID)
	if err != nil {
		return nil, domain.Internal(err, "cart.items", "failed to load cart items")
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPriceCents, &item.ImageURL); err != nil {
			return nil, domain.Internal(err, "cart.items", "failed to scan cart item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddItem upserts a line. A duplicate product merges quantities and
// refreshes the captured name, price, and image.
func (s *CartStore) AddItem(ctx context.Context, cartID uuid.UUID, item domain.CartItem) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cart_items (cart_id, product_id, name, quantity, unit_price_cents, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity,
			name = EXCLUDED.name,
			unit_price_cents = EXCLUDED.unit_price_cents,
			image_url = EXCLUDED.image_url`,
		cartID, item.ProductID, item.Name, item.Quantity, item.UnitPriceCents, item.ImageURL)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCartNotFound
		}
		return domain.Internal(err, "cart.add_item", "failed to add cart item")
	}
	return touchCart(ctx, s.pool, cartID)
}

func (s *CartStore) SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int32) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID, quantity)
	if err != nil {
		return domain.Internal(err, "cart.set_quantity", "failed to update cart item")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return touchCart(ctx, s.pool, cartID)
}

// RemoveItem deletes a line. Deleting a line that does not exist succeeds,
// so repeated removes converge on the same cart.
func (s *CartStore) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID)
	if err != nil {
		return domain.Internal(err, "cart.remove_item", "failed to remove cart item")
	}
	return touchCart(ctx, s.pool, cartID)
}

func (s *CartStore) Clear(ctx context.Context, cartID uuid.UUID) error {
	return clearCart(ctx, s.pool, cartID)
}

func clearCart(ctx context.Context, db pgxQuerier, cartID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return domain.Internal(err, "cart.clear", "failed to clear cart")
	}
	return touchCart(ctx, db, cartID)
}

func touchCart(ctx context.Context, db pgxQuerier, cartID uuid.UUID) error {
	tag, err := db.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	if err != nil {
		return domain.Internal(err, "cart.touch", "failed to touch cart")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartNotFound
	}
	return nil
}
