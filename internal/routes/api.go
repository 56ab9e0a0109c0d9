// Package routes wires HTTP handlers onto the router.
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopeasy/shopeasy/internal/middleware"
	"github.com/shopeasy/shopeasy/internal/router"
)

// RegisterAPIRoutes registers the storefront API. Public routes serve the
// catalog and account creation; everything else sits behind RequireAuth,
// with catalog writes and back-office reads behind RequireAdmin.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Catalog, public. Literal segments before the {id} route so
	// /featured and /categories are not parsed as product IDs.
	r.Get("/api/products", deps.Products.List)
	r.Get("/api/products/featured", deps.Products.Featured)
	r.Get("/api/products/categories", deps.Products.Categories)
	r.Get("/api/products/{id}", deps.Products.Get)

	// Accounts, public.
	r.Post("/api/users/register", deps.Users.Register)
	r.Post("/api/users/login", deps.Users.Login)

	authed := r.Group(middleware.RequireAuth)

	// Profile.
	authed.Get("/api/users/profile", deps.Users.Profile)
	authed.Put("/api/users/profile", deps.Users.UpdateProfile)

	// Cart.
	authed.Get("/api/cart", deps.Carts.Get)
	authed.Post("/api/cart", deps.Carts.AddItem)
	authed.Delete("/api/cart", deps.Carts.Clear)
	authed.Put("/api/cart/{productId}", deps.Carts.UpdateItem)
	authed.Delete("/api/cart/{productId}", deps.Carts.RemoveItem)

	// Orders.
	authed.Post("/api/orders", deps.Orders.Checkout)
	authed.Get("/api/orders", deps.Orders.ListMine)
	authed.Get("/api/orders/{id}", deps.Orders.Get)
	authed.Put("/api/orders/{id}/pay", deps.Orders.Pay)

	admin := r.Group(middleware.RequireAuth, middleware.RequireAdmin)

	// Catalog management.
	admin.Post("/api/products", deps.Products.Create)
	admin.Put("/api/products/{id}", deps.Products.Update)
	admin.Delete("/api/products/{id}", deps.Products.Delete)

	// Back office. The literal /admin segment wins over the {id} route.
	admin.Get("/api/orders/admin", deps.Orders.ListAll)
	admin.Put("/api/orders/{id}/status", deps.Orders.UpdateStatus)
	admin.Get("/api/users", deps.Users.List)
	admin.Get("/api/users/{id}", deps.Users.Get)
	admin.Put("/api/users/{id}", deps.Users.UpdateRole)
	admin.Delete("/api/users/{id}", deps.Users.Delete)
}

// RegisterSystemRoutes registers health and metrics endpoints. These sit
// outside the API middleware chain.
func RegisterSystemRoutes(r *router.Router, deps APIDeps) {
	r.Get("/health", healthHandler(deps.DB))
	r.Handle(http.MethodGet, "/metrics", promhttp.Handler())
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
