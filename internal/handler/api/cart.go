package api

import (
	"net/http"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// CartHandler serves the shopping cart endpoints. All routes require an
// authenticated user; the cart is always the caller's own.
type CartHandler struct {
	carts domain.CartService
}

func NewCartHandler(carts domain.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), user.ID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewCartView(cart))
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int32  `json:"quantity" validate:"required,gt=0"`
}

// AddItem handles POST /api/cart. Adding a product already in the cart
// merges quantities.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req addCartItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}
	productID, err := parseUUIDField(req.ProductID, "productId")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), user.ID, productID, req.Quantity)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewCartView(cart))
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity" validate:"required,gt=0"`
}

// UpdateItem handles PUT /api/cart/{productId}. Removal is its own
// endpoint, so a quantity below one is rejected.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	productID, err := PathUUID(r, "productId")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req updateCartItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	cart, err := h.carts.UpdateItemQuantity(r.Context(), user.ID, productID, req.Quantity)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewCartView(cart))
}

// RemoveItem handles DELETE /api/cart/{productId}. Removing a product that
// is not in the cart still succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	productID, err := PathUUID(r, "productId")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), user.ID, productID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewCartView(cart))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.carts.ClearCart(r.Context(), user.ID); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}
