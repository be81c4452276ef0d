package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/cardap-io/cardap/internal"
	"github.com/cardap-io/cardap/internal/cart"
	"github.com/cardap-io/cardap/internal/handler/admin"
	"github.com/cardap-io/cardap/internal/handler/storefront"
	"github.com/cardap-io/cardap/internal/middleware"
	"github.com/cardap-io/cardap/internal/postgres"
	"github.com/cardap-io/cardap/internal/router"
	"github.com/cardap-io/cardap/internal/routes"
	"github.com/cardap-io/cardap/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
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

	// Initialize pgx connection pool for the application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize services
	restaurantService := postgres.NewRestaurantService(pool)
	catalogService := postgres.NewCatalogService(pool)
	variationService := postgres.NewVariationService(pool)
	checkoutService := service.NewCheckoutService(restaurantService)

	// Session cart store with background expiry sweep
	cartStore := cart.NewStore(cfg.CartTTL)
	go cartStore.Sweep(ctx)

	secure := cfg.Env == "prod"

	// Storefront dependencies
	storefrontDeps := routes.StorefrontDeps{
		MenuHandler:     storefront.NewMenuHandler(restaurantService, catalogService, logger),
		CartHandler:     storefront.NewCartHandler(cartStore, catalogService, logger, secure),
		CheckoutHandler: storefront.NewCheckoutHandler(restaurantService, checkoutService, cartStore, logger),
	}

	// Admin dependencies
	adminDeps := routes.AdminDeps{
		SettingsHandler:  admin.NewSettingsHandler(restaurantService, logger),
		CategoryHandler:  admin.NewCategoryHandler(catalogService),
		ProductHandler:   admin.NewProductHandler(catalogService, logger),
		VariationHandler: admin.NewVariationHandler(variationService),
		TemplateHandler:  admin.NewTemplateHandler(variationService),
	}

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("cardap")

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		router.Logger(logger),
	)

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterStorefrontRoutes(r, storefrontDeps)
	routes.RegisterAdminRoutes(r, adminDeps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

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
