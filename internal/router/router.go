package router

import (
	"time"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/config"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/handler"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/middleware"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/repository"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/service"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	businessSvc := service.NewBusinessService(businessRepo)
	stockSvc := service.NewStockService(productRepo, movementRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, productRepo, customerRepo, businessRepo, stockSvc, dispatcher)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, productRepo, supplierRepo, businessRepo, stockSvc)
	reportSvc := service.NewReportService(invoiceRepo, purchaseRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc, stockSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	businessH := handler.NewBusinessHandler(businessSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyRole := middleware.RequireRole("staff", "admin")
		adminOnly := middleware.RequireRole("admin")

		// Sales invoices — the full lifecycle is open to staff
		v1.POST("/invoices", anyRole, invoicesH.Create)
		v1.GET("/invoices", anyRole, invoicesH.List)
		v1.GET("/invoices/:id", anyRole, invoicesH.Get)
		v1.GET("/invoices/:id/pdf", anyRole, invoicesH.DownloadPDF)
		v1.PUT("/invoices/:id", anyRole, invoicesH.Update)
		v1.POST("/invoices/:id/finalize", anyRole, invoicesH.Finalize)
		// Cancelling a tax document needs admin
		v1.POST("/invoices/:id/cancel", adminOnly, invoicesH.Cancel)

		// Purchase invoices
		v1.POST("/purchases", anyRole, purchasesH.Create)
		v1.GET("/purchases", anyRole, purchasesH.List)
		v1.GET("/purchases/:id", anyRole, purchasesH.Get)
		v1.PUT("/purchases/:id", anyRole, purchasesH.Update)
		v1.POST("/purchases/:id/finalize", anyRole, purchasesH.Finalize)
		v1.POST("/purchases/:id/cancel", adminOnly, purchasesH.Cancel)

		// Products — staff can read, writes and stock corrections are admin only
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.Get)
		v1.GET("/products/:id/stock/movements", anyRole, productsH.Movements)
		v1.POST("/products/:id/stock/adjust", adminOnly, productsH.AdjustStock)
		prods := v1.Group("/products", adminOnly)
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Deactivate)
			prods.POST("/:id/reactivate", productsH.Reactivate)
		}

		// Customers
		v1.GET("/customers", anyRole, customersH.List)
		v1.GET("/customers/:id", anyRole, customersH.Get)
		v1.POST("/customers", anyRole, customersH.Create)
		v1.PUT("/customers/:id", anyRole, customersH.Update)
		v1.DELETE("/customers/:id", adminOnly, customersH.Deactivate)
		v1.POST("/customers/:id/reactivate", adminOnly, customersH.Reactivate)

		// Suppliers
		v1.GET("/suppliers", anyRole, suppliersH.List)
		v1.GET("/suppliers/:id", anyRole, suppliersH.Get)
		v1.POST("/suppliers", anyRole, suppliersH.Create)
		v1.PUT("/suppliers/:id", anyRole, suppliersH.Update)
		v1.DELETE("/suppliers/:id", adminOnly, suppliersH.Deactivate)
		v1.POST("/suppliers/:id/reactivate", adminOnly, suppliersH.Reactivate)

		// Business profile
		v1.GET("/business", anyRole, businessH.Get)
		v1.PUT("/business", adminOnly, businessH.Upsert)

		// Reports
		reports := v1.Group("/reports", anyRole)
		{
			reports.GET("/sales-register", reportsH.SalesRegister)
			reports.GET("/purchase-register", reportsH.PurchaseRegister)
			reports.GET("/gst-summary", reportsH.GSTSummary)
		}

		// User administration
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
