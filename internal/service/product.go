// Package service implements the business logic behind the API handlers.
// Services validate input, enforce access rules, and delegate persistence
// to the domain store interfaces.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shopeasy/shopeasy/internal/domain"
)

const (
	// DefaultPageSize is the catalog and order list page size.
	DefaultPageSize = 10

	// DefaultFeaturedLimit caps the featured product carousel.
	DefaultFeaturedLimit = 5
)

type productService struct {
	products domain.ProductStore
}

// NewProductService creates a new ProductService instance
func NewProductService(products domain.ProductStore) domain.ProductService {
	return &productService{products: products}
}

func (s *productService) ListProducts(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = DefaultPageSize
	}
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	filter.Category = strings.TrimSpace(filter.Category)

	page, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return page, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit < 1 {
		limit = DefaultFeaturedLimit
	}
	products, err := s.products.ListFeatured(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	return products, nil
}

func (s *productService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *productService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	if err := validateProductParams(params.Name, params.PriceCents, params.Stock); err != nil {
		return nil, err
	}

	product, err := s.products.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) (*domain.Product, error) {
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return nil, domain.NewValidationError("product.update", "name", "Name cannot be empty")
	}
	if params.PriceCents != nil && *params.PriceCents < 0 {
		return nil, domain.NewValidationError("product.update", "price", "Price cannot be negative")
	}
	if params.Stock != nil && *params.Stock < 0 {
		return nil, domain.NewValidationError("product.update", "stock", "Stock cannot be negative")
	}

	product, err := s.products.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func validateProductParams(name string, priceCents int64, stock int32) error {
	var err error
	if strings.TrimSpace(name) == "" {
		err = domain.AddFieldError(err, "name", "Name is required")
	}
	if priceCents < 0 {
		err = domain.AddFieldError(err, "price", "Price cannot be negative")
	}
	if stock < 0 {
		err = domain.AddFieldError(err, "stock", "Stock cannot be negative")
	}
	if err != nil {
		if ve, ok := err.(*domain.ValidationError); ok {
			ve.Op = "product.create"
		}
		return err
	}
	return nil
}
