package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// OrderHandler serves checkout and order management endpoints.
type OrderHandler struct {
	checkout domain.CheckoutService
	orders   domain.OrderService
}

func NewOrderHandler(checkout domain.CheckoutService, orders domain.OrderService) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

type checkoutRequest struct {
	ShippingAddress struct {
		Address    string `json:"address"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postalCode"`
		Country    string `json:"country"`
	} `json:"shippingAddress"`
	PaymentMethod string `json:"paymentMethod"`
}

// Checkout handles POST /api/orders. Converts the caller's cart into an
// order; field validation happens in the checkout service so the response
// carries per-field errors.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req checkoutRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.checkout.Checkout(r.Context(), user.ID, domain.CheckoutParams{
		ShippingAddress: domain.ShippingAddress{
			AddressLine1: req.ShippingAddress.Address,
			City:         req.ShippingAddress.City,
			State:        req.ShippingAddress.State,
			PostalCode:   req.ShippingAddress.PostalCode,
			Country:      req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, NewOrderView(order))
}

// ListMine handles GET /api/orders.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	orders, err := h.orders.ListMyOrders(r.Context(), user.ID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	views := make([]OrderView, len(orders))
	for i := range orders {
		views[i] = NewOrderView(&orders[i])
	}
	RespondJSON(w, http.StatusOK, views)
}

// Get handles GET /api/orders/{id}. Owners see their own orders; admins
// see any.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	id, err := PathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id, user)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewOrderView(order))
}

// ListAll handles GET /api/orders/admin. Admin only, paginated.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := h.orders.ListOrders(r.Context(), page)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewOrderPageView(result))
}

type payOrderRequest struct {
	PaymentResult json.RawMessage `json:"paymentResult"`
}

// Pay handles PUT /api/orders/{id}/pay. Records the payment gateway's
// result verbatim.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req payOrderRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.orders.MarkPaid(r.Context(), id, req.PaymentResult)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewOrderView(order))
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PUT /api/orders/{id}/status. Admin only.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req updateOrderStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, status)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewOrderView(order))
}
