package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Observer7203/Online-Store-Test/internal"
	"github.com/Observer7203/Online-Store-Test/internal/events"
	"github.com/Observer7203/Online-Store-Test/internal/handler/api"
	"github.com/Observer7203/Online-Store-Test/internal/middleware"
	"github.com/Observer7203/Online-Store-Test/internal/redisx"
	"github.com/Observer7203/Online-Store-Test/internal/repository"
	"github.com/Observer7203/Online-Store-Test/internal/router"
	"github.com/Observer7203/Online-Store-Test/internal/routes"
	"github.com/Observer7203/Online-Store-Test/internal/service"
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

	// Initialize repository
	repo := repository.New(pool)

	// Initialize event publisher (nil when no brokers configured)
	publisher := events.NewPublisher(cfg.KafkaBrokers, logger)
	if publisher != nil {
		defer publisher.Close()
		logger.Info("Kafka publisher initialized", "brokers", cfg.KafkaBrokers)
	}

	// Initialize services
	userService := service.NewUserService(repo, logger)
	cartService := service.NewCartService(repo, logger)
	orderService := service.NewOrderService(repo, publisher, logger)
	productService := service.NewProductService(repo, logger)
	categoryService := service.NewCategoryService(repo, logger)
	attributeService := service.NewAttributeService(repo, logger)

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	metrics := middleware.NewMetrics("store")

	authRateLimiter := middleware.NewRateLimiter(middleware.StrictRateLimiterConfig())

	// Catalog limiter: Redis-backed when configured so limits hold across
	// instances, in-memory otherwise.
	var catalogRateLimit router.Middleware
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		if err := redisx.Ping(ctx, rdb); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
		logger.Info("Redis connection established", "addr", cfg.RedisAddr)
		catalogRateLimit = middleware.NewRedisRateLimiter(rdb, 60, time.Minute, logger).Middleware
	} else {
		catalogRateLimit = middleware.NewRateLimiter(middleware.CatalogRateLimiterConfig()).Middleware
	}

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		router.CORS(cfg.AllowedOrigins),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		router.Logger(logger),
		middleware.WithUser(userService),
	)

	// Metrics endpoint (protect via firewall in production)
	if cfg.MetricsEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
			metrics.Handler().ServeHTTP(w, req)
		})
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		ProductHandler:   api.NewProductHandler(productService, logger),
		CategoryHandler:  api.NewCategoryHandler(categoryService, logger),
		AttributeHandler: api.NewAttributeHandler(attributeService, logger),
		CartHandler:      api.NewCartHandler(cartService, logger),
		OrderHandler:     api.NewOrderHandler(orderService, logger),
		AuthHandler:      api.NewAuthHandler(userService, logger),
		AuthRateLimit:    authRateLimiter.Middleware,
		CatalogRateLimit: catalogRateLimit,
	})

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting API server", "address", addr, "env", cfg.Env)

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
