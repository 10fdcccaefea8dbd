// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"mandiflow/internal/core/security"
	"mandiflow/internal/domain/accounts"
	"mandiflow/internal/domain/auth"
	"mandiflow/internal/domain/catalog"
	"mandiflow/internal/domain/orders"
	"mandiflow/internal/domain/purchase"
	"mandiflow/internal/domain/sales"
	"mandiflow/internal/domain/stock"
	"mandiflow/internal/infrastructure/http/v1/handlers"
	"mandiflow/internal/infrastructure/http/v1/middleware"
	"mandiflow/internal/infrastructure/storage/postgres"
	"mandiflow/pkg/logger"
)

// RouterConfig holds the wired services for the HTTP layer.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// TokenValidator for access token validation.
	TokenValidator middleware.TokenValidator

	AuthService     *auth.Service
	CatalogService  *catalog.Service
	OrderService    *orders.Service
	PurchaseService *purchase.Service
	SalesService    *sales.Service
	AccountsService *accounts.Service
	StockService    *stock.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	v1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(cfg.AuthService)
		v1.POST("/auth/login", authHandler.Login)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.TokenValidator))

		registerUserRoutes(protected, authHandler)
		registerCatalogRoutes(protected, cfg)
		registerOrderRoutes(protected, cfg)
		registerPurchaseRoutes(protected, cfg)
		registerSalesRoutes(protected, cfg)
		registerAccountsRoutes(protected, cfg)
		registerStockRoutes(protected, cfg)
	}

	return router
}

// registerUserRoutes registers user management endpoints. Admin only.
func registerUserRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	users := rg.Group("/auth/users")
	users.Use(middleware.RequireRole(security.RoleAdmin))
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
	}
}

// registerCatalogRoutes registers produce catalog endpoints. Reads are open
// to every authenticated role; item edits are admin only.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	h := handlers.NewCatalogHandler(cfg.CatalogService)

	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("/items", h.ListItems)
		catalogGroup.PUT("/items", middleware.RequireRole(security.RoleAdmin), h.SaveItem)
		catalogGroup.GET("/availability", h.ListAvailability)
		catalogGroup.PUT("/availability",
			middleware.RequireRole(security.RoleAdmin, security.RolePurchase), h.SetAvailability)
	}
}

// registerOrderRoutes registers restaurant order endpoints.
func registerOrderRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	h := handlers.NewOrderHandler(cfg.OrderService)

	ordersGroup := rg.Group("/orders")
	{
		ordersGroup.POST("", h.Create)
		ordersGroup.GET("", h.List)
		ordersGroup.PUT("/:id/status",
			middleware.RequireRole(security.RoleAdmin, security.RolePurchase), h.UpdateStatus)
	}
}

// registerPurchaseRoutes registers purchase planning endpoints.
func registerPurchaseRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	h := handlers.NewPurchaseHandler(cfg.PurchaseService)

	purchaseGroup := rg.Group("/purchase")
	purchaseGroup.Use(middleware.RequireRole(security.RoleAdmin, security.RolePurchase))
	{
		purchaseGroup.POST("/:date/view", h.DayView)
		purchaseGroup.POST("/:date/save", h.SavePlan)
		purchaseGroup.POST("/:date/lock", h.LockDay)
		purchaseGroup.POST("/:date/reopen", middleware.RequireRole(security.RoleAdmin), h.ReopenDay)
		purchaseGroup.POST("/:date/finalize", h.FinalizeDay)
		purchaseGroup.GET("/history", h.History)
	}
}

// registerSalesRoutes registers sales invoice endpoints.
func registerSalesRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	h := handlers.NewSalesHandler(cfg.SalesService)

	salesGroup := rg.Group("/sales")
	salesGroup.Use(middleware.RequireRole(security.RoleAdmin, security.RoleSales))
	{
		salesGroup.GET("/uninvoiced", h.UninvoicedOrders)
		salesGroup.POST("/invoices", h.Create)
		salesGroup.GET("/invoices", h.List)
		salesGroup.GET("/invoices/:id", h.Get)
		salesGroup.PUT("/invoices/:id", h.UpdateDraft)
		salesGroup.POST("/invoices/:id/payments", h.AddPayment)
		salesGroup.POST("/invoices/:id/finalize", h.Finalize)
	}
}

// registerAccountsRoutes registers cash voucher and day close endpoints.
// Per-actor posting rules live in the service layer.
func registerAccountsRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	h := handlers.NewAccountsHandler(cfg.AccountsService)

	accountsGroup := rg.Group("/accounts")
	accountsGroup.Use(middleware.RequireRole(security.RoleAdmin, security.RolePurchase))
	{
		accountsGroup.POST("/vouchers", h.PostVoucher)
		accountsGroup.GET("/days", h.ListDays)
		accountsGroup.GET("/days/:date", h.GetDay)
		accountsGroup.POST("/days/:date/close", middleware.RequireRole(security.RoleAdmin), h.CloseDay)
	}
}

// registerStockRoutes registers stock register endpoints.
func registerStockRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	h := handlers.NewStockHandler(cfg.StockService)

	stockGroup := rg.Group("/stock")
	{
		stockGroup.GET("", h.List)
		stockGroup.PUT("", middleware.RequireRole(security.RoleAdmin), h.Set)
	}
}
