package router

import (
	"time"

	"greenroots/internal/config"
	"greenroots/internal/handler"
	"greenroots/internal/infra"
	"greenroots/internal/middleware"
	"greenroots/internal/repository"
	"greenroots/internal/service"
	"greenroots/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, paymentCB *infra.CircuitBreaker) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	paymentClient := infra.NewPaymentClient(cfg.StripeAPIURL, cfg.StripeSecretKey)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	treeRepo := repository.NewTreeRepository(db)
	forestRepo := repository.NewForestRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	searchRepo := repository.NewSearchRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo, rdb)
	treeSvc := service.NewTreeService(treeRepo, forestRepo, linkRepo)
	forestSvc := service.NewForestService(forestRepo, treeRepo, linkRepo)
	orderSvc := service.NewOrderService(orderRepo, linkRepo, userRepo, dispatcher, rdb)
	searchSvc := service.NewSearchService(searchRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	treesH := handler.NewTreesHandler(treeSvc)
	forestsH := handler.NewForestsHandler(forestSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	searchH := handler.NewSearchHandler(searchSvc)
	paymentsH := handler.NewPaymentsHandler(paymentClient, paymentCB)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, paymentCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", authH.Register)
	}

	// Public catalog
	trees := r.Group("/v1/trees")
	{
		trees.GET("", treesH.List)
		trees.GET("/forests", treesH.ListWithForests)
		trees.GET("/country/:slug", treesH.ByCountry)
		trees.GET("/category/:slug", treesH.ByCategory)
		trees.GET("/:id", treesH.Get)
		trees.GET("/:id/forests-and-stock", treesH.GetWithStock)
		trees.GET("/:id/forests", treesH.Forests)
	}
	forests := r.Group("/v1/forests")
	{
		forests.GET("", forestsH.List)
		forests.GET("/:id", forestsH.Get)
		forests.GET("/:id/trees-and-stock", forestsH.GetWithStock)
		forests.GET("/:id/trees", forestsH.Trees)
	}
	r.GET("/v1/search", searchH.Search)
	r.POST("/v1/payments/intent", paymentsH.CreateIntent)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog writes — admin only
		adminTrees := v1.Group("/trees", middleware.RequireRole(middleware.RoleAdmin))
		{
			adminTrees.POST("", treesH.Create)
			adminTrees.PATCH("/:id", treesH.Update)
			adminTrees.DELETE("/:id", treesH.Delete)
		}
		adminForests := v1.Group("/forests", middleware.RequireRole(middleware.RoleAdmin))
		{
			adminForests.POST("", forestsH.Create)
			adminForests.PATCH("/:id", forestsH.Update)
			adminForests.DELETE("/:id", forestsH.Delete)
		}

		// Users — list/create are back-office, the rest is self-or-admin
		v1.GET("/users", middleware.RequireRole(middleware.RoleAdmin), usersH.List)
		v1.POST("/users", middleware.RequireRole(middleware.RoleAdmin), usersH.Create)
		users := v1.Group("/users", middleware.RequireSelfOrAdmin("id"))
		{
			users.GET("/:id", usersH.Get)
			users.GET("/:id/impact", usersH.Impact)
			users.GET("/:id/orders", ordersH.ListByUser)
			users.PATCH("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
		}

		// Orders — listing all is back-office; everything else checks
		// ownership against the order's owner inside the handler
		v1.GET("/orders", middleware.RequireRole(middleware.RoleAdmin), ordersH.List)
		orders := v1.Group("/orders")
		{
			orders.POST("", ordersH.Create)
			orders.GET("/:id", ordersH.Get)
			orders.GET("/:id/full", ordersH.GetFull)
			orders.GET("/:id/items", ordersH.Items)
			orders.PATCH("/:id", ordersH.Update)
			orders.POST("/:id/items", ordersH.AddItem)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
