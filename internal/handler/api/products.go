package api

import (
	"net/http"
	"strconv"

	"github.com/shopeasy/shopeasy/internal/domain"
	"github.com/shopeasy/shopeasy/internal/service"
)

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	products domain.ProductService
}

func NewProductHandler(products domain.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /api/products. Supports keyword, category, and page
// query parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	filter := domain.ProductFilter{
		Keyword:  q.Get("keyword"),
		Category: q.Get("category"),
		Page:     page,
	}

	result, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewProductPageView(result))
}

// Featured handles GET /api/products/featured.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = service.DefaultFeaturedLimit
	}

	products, err := h.products.ListFeatured(r.Context(), limit)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = NewProductView(&products[i])
	}
	RespondJSON(w, http.StatusOK, views)
}

// Categories handles GET /api/products/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.ListCategories(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	RespondJSON(w, http.StatusOK, categories)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewProductView(product))
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"required"`
	PriceCents  int64    `json:"priceCents" validate:"gte=0"`
	Stock       int32    `json:"stock" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Seller      string   `json:"seller"`
	Images      []string `json:"images"`
	Featured    bool     `json:"featured"`
}

// Create handles POST /api/products. Admin only.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.products.CreateProduct(r.Context(), domain.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Category:    req.Category,
		Seller:      req.Seller,
		Images:      req.Images,
		Featured:    req.Featured,
	})
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, NewProductView(product))
}

type updateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description"`
	PriceCents  *int64   `json:"priceCents" validate:"omitempty,gte=0"`
	Stock       *int32   `json:"stock" validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	Seller      *string  `json:"seller"`
	Images      []string `json:"images"`
	Featured    *bool    `json:"featured"`
}

// Update handles PUT /api/products/{id}. Admin only. Absent fields are
// left unchanged.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req updateProductRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), id, domain.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Category:    req.Category,
		Seller:      req.Seller,
		Images:      req.Images,
		Featured:    req.Featured,
	})
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewProductView(product))
}

// Delete handles DELETE /api/products/{id}. Admin only.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
