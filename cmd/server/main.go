package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/shopeasy/shopeasy/internal"
	"github.com/shopeasy/shopeasy/internal/auth"
	"github.com/shopeasy/shopeasy/internal/bootstrap"
	"github.com/shopeasy/shopeasy/internal/events"
	"github.com/shopeasy/shopeasy/internal/handler/api"
	"github.com/shopeasy/shopeasy/internal/middleware"
	"github.com/shopeasy/shopeasy/internal/postgres"
	"github.com/shopeasy/shopeasy/internal/router"
	"github.com/shopeasy/shopeasy/internal/routes"
	"github.com/shopeasy/shopeasy/internal/service"
	"github.com/shopeasy/shopeasy/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize stores
	userStore := postgres.NewUserStore(pool)
	productStore := postgres.NewProductStore(pool)
	cartStore := postgres.NewCartStore(pool)
	orderStore := postgres.NewOrderStore(pool)

	// Create the initial admin account if configured
	if err := bootstrap.EnsureAdmin(ctx, userStore, &bootstrap.AdminConfig{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
	}, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	// Initialize event publisher. An empty AMQP URL disables publishing;
	// order metrics are recorded either way.
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logger.Info("Event publisher connected")
	} else {
		logger.Warn("AMQP_URL not set, order events disabled")
	}
	businessMetrics := telemetry.NewBusinessMetrics("shopeasy", nil)
	publisher = telemetry.InstrumentPublisher(publisher, businessMetrics)

	// Initialize services
	signer := auth.NewTokenSigner(cfg.JWT.Secret, cfg.JWT.TTL)
	userService := service.NewUserService(userStore, signer)
	productService := service.NewProductService(productStore)
	cartService := service.NewCartService(cartStore, productStore)
	checkoutService := service.NewCheckoutService(cartStore, orderStore, publisher, logger)
	orderService := service.NewOrderService(orderStore, publisher, logger)

	// In dev, surface internal error detail in responses
	if cfg.Env == "dev" {
		api.EnableDebugErrors()
	}

	// Build route dependencies
	deps := routes.APIDeps{
		Products: api.NewProductHandler(productService),
		Carts:    api.NewCartHandler(cartService),
		Orders:   api.NewOrderHandler(checkoutService, orderService),
		Users:    api.NewUserHandler(userService),
		DB:       pool,
	}

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("shopeasy")

	// Configure rate limiting
	rateLimiterConfig := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimit.RequestsPerMinute > 0 {
		rateLimiterConfig.RequestsPerSecond = float64(cfg.RateLimit.RequestsPerMinute) / 60
	}
	if cfg.RateLimit.Burst > 0 {
		rateLimiterConfig.BurstSize = cfg.RateLimit.Burst
	}
	rateLimiter := middleware.NewRateLimiter(rateLimiterConfig)
	defer rateLimiter.Stop()

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		router.CORS(cfg.CORS.AllowedOrigins),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		rateLimiter.Middleware,
		middleware.WithClientIP(),
		middleware.WithUser(signer, userStore),
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)

	routes.RegisterSystemRoutes(r, deps)
	routes.RegisterAPIRoutes(r, deps)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
