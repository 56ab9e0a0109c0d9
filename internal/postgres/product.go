// Package postgres implements the domain store interfaces on PostgreSQL
// using pgx. Queries are hand-written; no ORM.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// ProductStore implements domain.ProductStore using PostgreSQL.
type ProductStore struct {
	pool *pgxpool.Pool
}

// Compile-time check that ProductStore implements domain.ProductStore.
var _ domain.ProductStore = (*ProductStore)(nil)

// NewProductStore creates a new PostgreSQL-backed product store.
func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `id, name, description, price_cents, stock, category, seller, images, featured, rating, num_reviews, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock,
		&p.Category, &p.Seller, &p.Images, &p.Featured,
		&p.Rating, &p.NumReviews, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) Create(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	images := params.Images
	if images == nil {
		images = []string{}
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price_cents, stock, category, seller, images, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		params.Name, params.Description, params.PriceCents, params.Stock,
		params.Category, params.Seller, images, params.Featured,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, domain.Internal(err, "product.create", "failed to create product")
	}
	return p, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "product.get", "failed to get product")
	}
	return p, nil
}

// Update builds the SET clause from the non-nil params so untouched columns
// keep their values.
func (s *ProductStore) Update(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) (*domain.Product, error) {
	set := "updated_at = now()"
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.PriceCents != nil {
		add("price_cents", *params.PriceCents)
	}
	if params.Stock != nil {
		add("stock", *params.Stock)
	}
	if params.Category != nil {
		add("category", *params.Category)
	}
	if params.Seller != nil {
		add("seller", *params.Seller)
	}
	if params.Images != nil {
		add("images", params.Images)
	}
	if params.Featured != nil {
		add("featured", *params.Featured)
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE products SET `+set+` WHERE id = $1 RETURNING `+productColumns, args...)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "product.update", "failed to update product")
	}
	return p, nil
}

func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "product.delete", "failed to delete product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (s *ProductStore) List(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	where := "TRUE"
	args := []any{}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d)", n, n, n)
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}

	var total int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE `+where, args...).Scan(&total); err != nil {
		return nil, domain.Internal(err, "product.list", "failed to count products")
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	rows, err := s.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM products WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}
	defer rows.Close()

	items := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "product.list", "failed to scan product")
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "product.list", "failed to read products")
	}

	return &domain.ProductPage{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

func (s *ProductStore) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE featured ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, domain.Internal(err, "product.list_featured", "failed to list featured products")
	}
	defer rows.Close()

	items := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "product.list_featured", "failed to scan product")
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, domain.Internal(err, "product.categories", "failed to list categories")
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, domain.Internal(err, "product.categories", "failed to scan category")
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ReserveStock is a single conditional update so concurrent reservations
// cannot oversell. Zero rows affected means either the product is gone or
// the stock guard failed; one extra read tells them apart.
func (s *ProductStore) ReserveStock(ctx context.Context, id uuid.UUID, qty int32) error {
	return reserveStock(ctx, s.pool, id, qty)
}

func reserveStock(ctx context.Context, db pgxQuerier, id uuid.UUID, qty int32) error {
	tag, err := db.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		id, qty)
	if err != nil {
		return domain.Internal(err, "product.reserve_stock", "failed to reserve stock")
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var name string
	var available int32
	err = db.QueryRow(ctx, `SELECT name, stock FROM products WHERE id = $1`, id).Scan(&name, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return domain.Internal(err, "product.reserve_stock", "failed to check stock")
	}
	return domain.InsufficientStock(name, available)
}
