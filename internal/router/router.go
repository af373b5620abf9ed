package router

import (
	"time"

	"github.com/Faroffweb/Gst-Trail/internal/config"
	"github.com/Faroffweb/Gst-Trail/internal/handler"
	"github.com/Faroffweb/Gst-Trail/internal/middleware"
	"github.com/Faroffweb/Gst-Trail/internal/repository"
	"github.com/Faroffweb/Gst-Trail/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	stockSvc := service.NewStockService(productRepo, movementRepo)
	productSvc := service.NewProductService(productRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	companySvc := service.NewCompanyService(companyRepo)
	lookupSvc := service.NewLookupService(lookupRepo)
	reportSvc := service.NewReportService(reportRepo)

	cacheTTL := time.Duration(cfg.DashboardCacheTTLSeconds) * time.Second
	dashboardSvc := service.NewDashboardService(productRepo, customerRepo, invoiceRepo, purchaseRepo, rdb, cacheTTL)

	// Mutating services invalidate the dashboard cache best-effort.
	purchaseSvc := service.NewPurchaseService(purchaseRepo, productRepo, stockSvc, dashboardSvc)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, productRepo, customerRepo, companyRepo, stockSvc, dashboardSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc, stockSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	companyH := handler.NewCompanyHandler(companySvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	stockH := handler.NewStockHandler(stockSvc)
	lookupsH := handler.NewLookupsHandler(lookupSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		v1.GET("/company", companyH.Get)
		v1.PUT("/company", companyH.Update)

		v1.GET("/dashboard", dashboardH.Summary)

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.GetByID)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.PATCH("/:id/stock", productsH.AdjustStock)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.GetByID)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		purchases := v1.Group("/purchases")
		{
			purchases.POST("", purchasesH.Create)
			purchases.GET("", purchasesH.List)
			purchases.GET("/:id", purchasesH.GetByID)
			purchases.PUT("/:id", purchasesH.Update)
			purchases.DELETE("/:id", purchasesH.Delete) // guarded safe delete
		}

		invoices := v1.Group("/invoices")
		{
			invoices.POST("", invoicesH.Create)
			invoices.GET("", invoicesH.List)
			invoices.GET("/:id", invoicesH.GetByID)
			invoices.DELETE("/:id", invoicesH.Delete) // cascade + stock restore
			invoices.POST("/:id/items", invoicesH.AddItem)
			invoices.PUT("/:id/items/:itemID", invoicesH.UpdateItem)
			invoices.DELETE("/:id/items/:itemID", invoicesH.DeleteItem)
		}

		v1.GET("/stock/movements", stockH.ListMovements)

		reports := v1.Group("/reports")
		{
			reports.GET("/transactions", reportsH.GetCombined)
			reports.GET("/transactions/export", reportsH.Export)
		}

		units := v1.Group("/units")
		{
			units.POST("", lookupsH.CreateUnit)
			units.GET("", lookupsH.ListUnits)
			units.DELETE("/:id", lookupsH.DeleteUnit)
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", lookupsH.CreateCategory)
			categories.GET("", lookupsH.ListCategories)
			categories.DELETE("/:id", lookupsH.DeleteCategory)
		}
	}

	return r
}
