package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// OrderStore implements domain.OrderStore using PostgreSQL.
type OrderStore struct {
	pool *pgxpool.Pool
}

var _ domain.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates a new PostgreSQL-backed order store.
func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// CreateFromCheckout runs the whole checkout write set in one transaction:
// reserve stock line by line, insert the order and its items, clear the
// cart. Any failed reservation rolls everything back, so a buyer either
// gets the full order or the shelves are untouched.
func (s *OrderStore) CreateFromCheckout(ctx context.Context, order *domain.Order, cartID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Internal(err, "order.checkout", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	for _, item := range order.Items {
		if err := reserveStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	addr := order.ShippingAddress
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, user_id, address_line1, city, state, postal_code, country,
			payment_method, items_cents, tax_cents, shipping_cents, total_cents,
			status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		order.ID, order.UserID, addr.AddressLine1, addr.City, addr.State,
		addr.PostalCode, addr.Country, order.PaymentMethod,
		order.ItemsCents, order.TaxCents, order.ShippingCents, order.TotalCents,
		order.Status, order.CreatedAt)
	if err != nil {
		return domain.Internal(err, "order.checkout", "failed to insert order")
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, name, quantity, unit_price_cents, image_url)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, item.ProductID, item.Name, item.Quantity, item.UnitPriceCents, item.ImageURL)
		if err != nil {
			return domain.Internal(err, "order.checkout", "failed to insert order item")
		}
	}

	if err := clearCart(ctx, tx, cartID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Internal(err, "order.checkout", "failed to commit order")
	}
	return nil
}

const orderColumns = `id, user_id, address_line1, city, state, postal_code, country,
	payment_method, items_cents, tax_cents, shipping_cents, total_cents,
	is_paid, paid_at, payment_result, status, is_delivered, delivered_at, created_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.UserID,
		&o.ShippingAddress.AddressLine1, &o.ShippingAddress.City, &o.ShippingAddress.State,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.PaymentMethod, &o.ItemsCents, &o.TaxCents, &o.ShippingCents, &o.TotalCents,
		&o.IsPaid, &o.PaidAt, &o.PaymentResult, &o.Status, &o.IsDelivered, &o.DeliveredAt,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get", "failed to get order")
	}

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (s *OrderStore) loadItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT product_id, name, quantity, unit_price_cents, image_url
		FROM order_items WHERE order_id = $1`,
		orderID)
	if err != nil {
		return nil, domain.Internal(err, "order.items", "failed to load order items")
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPriceCents, &item.ImageURL); err != nil {
			return nil, domain.Internal(err, "order.items", "failed to scan order item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *OrderStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, domain.Internal(err, "order.list_user", "failed to list orders")
	}
	defer rows.Close()

	orders, err := s.collectWithItems(ctx, rows)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) ListAll(ctx context.Context, page, pageSize int) (*domain.OrderListPage, error) {
	var total int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&total); err != nil {
		return nil, domain.Internal(err, "order.list_all", "failed to count orders")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, domain.Internal(err, "order.list_all", "failed to list orders")
	}
	defer rows.Close()

	orders, err := s.collectWithItems(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &domain.OrderListPage{
		Orders:     orders,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *OrderStore) collectWithItems(ctx context.Context, rows pgx.Rows) ([]domain.Order, error) {
	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domain.Internal(err, "order.list", "failed to scan order")
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.list", "failed to read orders")
	}
	rows.Close()

	for i := range orders {
		items, err := s.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *OrderStore) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time, result json.RawMessage) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE orders SET is_paid = TRUE, paid_at = $2, payment_result = $3 WHERE id = $1`,
		id, paidAt, result)
	if err != nil {
		return domain.Internal(err, "order.mark_paid", "failed to mark order paid")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, deliveredAt *time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders SET
			status = $2,
			is_delivered = is_delivered OR $3,
			delivered_at = COALESCE($4, delivered_at)
		WHERE id = $1`,
		id, status, deliveredAt != nil, deliveredAt)
	if err != nil {
		return domain.Internal(err, "order.update_status", "failed to update order status")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
