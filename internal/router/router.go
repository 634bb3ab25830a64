package router

import (
	"time"

	"j5pharmacy/internal/config"
	"j5pharmacy/internal/handler"
	"j5pharmacy/internal/infra"
	"j5pharmacy/internal/middleware"
	"j5pharmacy/internal/repository"
	"j5pharmacy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, clock *infra.Clock) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	starPointsRepo := repository.NewStarPointsRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	archiveRepo := repository.NewArchiveRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	sessionSvc := service.NewSessionService(sessionRepo, clock)
	authSvc := service.NewAuthService(userRepo, sessionSvc, rdb, cfg)
	saleSvc := service.NewSaleService(saleRepo, inventoryRepo, starPointsRepo, productRepo, clock, cfg.PointsPerAmount)
	pointsSvc := service.NewPointsService(starPointsRepo, saleRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, inventoryRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	branchSvc := service.NewBranchService(branchRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	archiveSvc := service.NewArchiveService(db, clock, archiveRepo, productRepo, inventoryRepo, categoryRepo, branchRepo, customerRepo)
	prescriptionSvc := service.NewPrescriptionService(prescriptionRepo, customerRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	transactionsH := handler.NewTransactionsHandler(saleSvc, pointsSvc)
	reconciliationH := handler.NewReconciliationHandler(sessionSvc)
	productsH := handler.NewProductsHandler(productSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	branchesH := handler.NewBranchesHandler(branchSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	archiveH := handler.NewArchiveHandler(archiveSvc)
	prescriptionsH := handler.NewPrescriptionsHandler(prescriptionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/pos/login", middleware.LoginRateLimiter(), authH.POSLogin)
		auth.POST("/forgot-password", middleware.LoginRateLimiter(), authH.ForgotPassword)
		auth.POST("/reset-password", authH.ResetPassword)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		api.POST("/auth/pos/end-session", middleware.RequireRole("pharmacist", "manager", "admin"), authH.EndPOSSession)

		// POS transactions — any staff role
		tx := api.Group("/transactions", middleware.RequireRole("pharmacist", "manager", "admin"))
		{
			tx.POST("/create", transactionsH.Create)
			tx.GET("", transactionsH.List)
			tx.GET("/:id", transactionsH.Get)
			tx.POST("/star-points/redeem", transactionsH.RedeemPoints)
			tx.GET("/star-points/:customer_id", transactionsH.GetPointsBalance)
		}
		// Void requires supervision
		api.POST("/transactions/:id/void", middleware.RequireRole("manager", "admin"), transactionsH.Void)

		recon := api.Group("/cash-reconciliation", middleware.RequireRole("pharmacist", "manager", "admin"))
		{
			recon.GET("/session-summary/:sessionId", reconciliationH.SessionSummary)
			recon.POST("/save", reconciliationH.Save)
		}

		// Catalog reads — all staff (POS scanner lookup included)
		api.GET("/products", middleware.RequireRole("pharmacist", "manager", "admin"), productsH.List)
		api.GET("/products/:id", middleware.RequireRole("pharmacist", "manager", "admin"), productsH.Get)
		api.GET("/products/barcode/:barcode", middleware.RequireRole("pharmacist", "manager", "admin"), productsH.GetByBarcode)
		api.GET("/inventory/branch/:branchId", middleware.RequireRole("pharmacist", "manager", "admin"), productsH.BranchStock)
		api.GET("/inventory/branch/:branchId/low-stock", middleware.RequireRole("pharmacist", "manager", "admin"), productsH.LowStock)
		// Catalog writes — manager and admin
		prods := api.Group("/products", middleware.RequireRole("manager", "admin"))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
		}
		api.PUT("/inventory/stock", middleware.RequireRole("manager", "admin"), productsH.SetStock)

		api.GET("/categories", middleware.RequireRole("pharmacist", "manager", "admin"), categoriesH.List)
		cats := api.Group("/categories", middleware.RequireRole("manager", "admin"))
		{
			cats.POST("", categoriesH.Create)
			cats.PUT("/:id", categoriesH.Update)
		}

		api.GET("/branches", middleware.RequireRole("pharmacist", "manager", "admin"), branchesH.List)
		api.GET("/branches/:id", middleware.RequireRole("pharmacist", "manager", "admin"), branchesH.Get)
		branches := api.Group("/branches", middleware.RequireRole("admin"))
		{
			branches.POST("", branchesH.Create)
			branches.PUT("/:id", branchesH.Update)
		}

		customers := api.Group("/customers", middleware.RequireRole("pharmacist", "manager", "admin"))
		{
			customers.POST("", customersH.Create)
			customers.GET("/search", customersH.Search)
			customers.GET("/card/:cardId", customersH.GetByCard)
			customers.GET("/:id", customersH.Get)
			customers.PUT("/:id", customersH.Update)
		}

		prescriptions := api.Group("/prescriptions", middleware.RequireRole("pharmacist", "manager", "admin"))
		{
			prescriptions.POST("", prescriptionsH.Create)
			prescriptions.GET("/:id", prescriptionsH.Get)
			prescriptions.GET("/:id/image", prescriptionsH.GetImage)
			prescriptions.GET("/customer/:customerId", prescriptionsH.ListByCustomer)
		}

		// Archival — one endpoint family for every registered entity kind
		archive := api.Group("/archive", middleware.RequireRole("manager", "admin"))
		{
			archive.POST("/:entity/:id", archiveH.Archive)
			archive.POST("/:entity/:id/restore", archiveH.Restore)
			archive.GET("/:entity", archiveH.ListArchived)
		}

		users := api.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	return r
}
