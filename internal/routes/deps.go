package routes

import (
	"context"

	"github.com/shopeasy/shopeasy/internal/handler/api"
)

// Pinger reports backend connectivity for the health endpoint. Satisfied
// by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// APIDeps contains the handlers and probes the API routes need.
type APIDeps struct {
	Products *api.ProductHandler
	Carts    *api.CartHandler
	Orders   *api.OrderHandler
	Users    *api.UserHandler

	// DB is pinged by /health. Optional; nil skips the check.
	DB Pinger
}
