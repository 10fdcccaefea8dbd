// Package main is the entry point for the mandiflow API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mandiflow/internal/domain/accounts"
	"mandiflow/internal/domain/auth"
	"mandiflow/internal/domain/catalog"
	"mandiflow/internal/domain/orders"
	"mandiflow/internal/domain/purchase"
	"mandiflow/internal/domain/sales"
	"mandiflow/internal/domain/stock"
	v1 "mandiflow/internal/infrastructure/http/v1"
	"mandiflow/internal/infrastructure/storage/postgres"
	"mandiflow/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting mandiflow server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	poolCfg := postgres.DefaultPoolConfig(dsn)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Repositories ---
	catalogRepo := postgres.NewCatalogRepo(txManager)
	orderRepo := postgres.NewOrderRepo(txManager)
	stockRepo := postgres.NewStockRepo(txManager)
	purchaseRepo := postgres.NewPurchaseRepo(txManager, auditService)
	salesRepo := postgres.NewSalesRepo(txManager, auditService)
	accountsRepo := postgres.NewAccountsRepo(txManager, auditService)
	userRepo := postgres.NewUserRepo(txManager)

	// --- Services ---
	catalogService := catalog.NewService(catalogRepo)
	orderService := orders.NewService(orderRepo)
	stockService := stock.NewService(stockRepo)
	purchaseService := purchase.NewService(purchaseRepo, catalogService, orderService, stockService)
	salesService := sales.NewService(salesRepo, orderService)
	accountsService := accounts.NewService(accountsRepo, purchaseService)

	jwtSecret := mustEnv("JWT_SECRET")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	authService := auth.NewService(userRepo, jwtService, auth.DefaultServiceConfig())

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log,
		TokenValidator:  jwtService,
		AuthService:     authService,
		CatalogService:  catalogService,
		OrderService:    orderService,
		PurchaseService: purchaseService,
		SalesService:    salesService,
		AccountsService: accountsService,
		StockService:    stockService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
