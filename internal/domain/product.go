package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

// Product-related domain errors.
var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
)

// Product represents a catalog entry. Prices are stored in cents to avoid
// floating point drift in money math.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	PriceCents  int64
	Stock       int32
	Category    string
	Seller      string
	Images      []string
	Featured    bool
	Rating      float64
	NumReviews  int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock reports whether the product can satisfy an order for qty units.
func (p *Product) InStock(qty int32) bool {
	return p.Stock >= qty
}

// ProductFilter narrows and paginates catalog listings.
// Keyword matches name, description, and category case-insensitively.
type ProductFilter struct {
	Keyword  string
	Category string
	Page     int
	PageSize int
}

// ProductPage is one page of catalog results with the total match count
// so callers can compute page counts.
type ProductPage struct {
	Items      []Product
	TotalCount int64
	Page       int
	PageSize   int
}

// CreateProductParams holds the fields required to create a product.
type CreateProductParams struct {
	Name        string
	Description string
	PriceCents  int64
	Stock       int32
	Category    string
	Seller      string
	Images      []string
	Featured    bool
}

// UpdateProductParams holds optional field updates. Nil pointers leave the
// stored value unchanged.
type UpdateProductParams struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Stock       *int32
	Category    *string
	Seller      *string
	Images      []string
	Featured    *bool
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// ProductStore provides persistence for the product catalog.
type ProductStore interface {
	// Create inserts a new product and returns it with generated fields set.
	Create(ctx context.Context, params CreateProductParams) (*Product, error)

	// GetByID retrieves a product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// Update applies a partial update to a product.
	Update(ctx context.Context, id uuid.UUID, params UpdateProductParams) (*Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a filtered, paginated page of products.
	List(ctx context.Context, filter ProductFilter) (*ProductPage, error)

	// ListFeatured returns up to limit featured products.
	ListFeatured(ctx context.Context, limit int) ([]Product, error)

	// Categories returns the distinct category names in the catalog.
	Categories(ctx context.Context) ([]string, error)

	// ReserveStock atomically decrements stock by qty if at least qty units
	// remain. Returns ErrInsufficientStock when the guard fails.
	ReserveStock(ctx context.Context, id uuid.UUID, qty int32) error
}

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// ProductService provides business logic for catalog operations.
type ProductService interface {
	// ListProducts returns products matching the given filter.
	ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)

	// ListFeatured returns up to limit featured products.
	ListFeatured(ctx context.Context, limit int) ([]Product, error)

	// ListCategories returns the distinct category names.
	ListCategories(ctx context.Context) ([]string, error)

	// CreateProduct creates a new catalog entry.
	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)

	// UpdateProduct applies a partial update.
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (*Product, error)

	// DeleteProduct removes a product from the catalog.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
