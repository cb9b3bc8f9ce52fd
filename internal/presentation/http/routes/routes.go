package routes

import (
	"time"

	"github.com/agrimarket/agrimarket-api/internal/config"
	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	domainRepo "github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/handler"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/middleware"
	"github.com/agrimarket/agrimarket-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Order     *handler.OrderHandler
	Invoice   *handler.InvoiceHandler
	Payment   *handler.PaymentHandler
	Message   *handler.MessageHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerPublicRoutes(v1, h, deps)

		// Authenticated storefront routes
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})

		registerProtectedRoutes(protected, h, idempotency)

		// Back-office routes
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		registerAdminRoutes(admin, h, idempotency)
	}

	return router
}

func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}

	// Storefront catalog, admins see inactive products too
	catalog := v1.Group("")
	catalog.Use(middleware.OptionalAuthMiddleware(deps.JWTManager))
	{
		catalog.GET("/products", h.Product.List)
		catalog.GET("/products/:id", h.Product.Get)
		catalog.GET("/products/:id/image", h.Product.GetImageURL)
		catalog.GET("/categories", h.Category.List)
		catalog.GET("/categories/:id", h.Category.Get)
	}

	// Contact form
	v1.POST("/contact", h.Message.Create)
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	// Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/me", h.Auth.Me)
	protected.PUT("/me", h.Auth.UpdateProfile)
	protected.PUT("/me/password", h.Auth.ChangePassword)

	// Storefront orders
	orders := protected.Group("/orders")
	{
		orders.POST("", idempotency, h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}
}

func registerAdminRoutes(admin *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	// Dashboard
	admin.GET("/dashboard", h.Dashboard.Stats)

	// Orders
	orders := admin.Group("/orders")
	{
		orders.POST("", idempotency, h.Order.AdminCreate)
		orders.GET("", h.Order.AdminList)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.DELETE("/:id", h.Order.Delete)
	}

	// Invoices
	invoices := admin.Group("/invoices")
	{
		invoices.POST("", h.Invoice.Create)
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.GET("/:id/payments", h.Invoice.Payments)
		invoices.DELETE("/:id", h.Invoice.Delete)
	}

	// Payments
	payments := admin.Group("/payments")
	{
		payments.POST("", idempotency, h.Payment.Record)
		payments.GET("", h.Payment.List)
		payments.GET("/:id", h.Payment.Get)
	}

	// Products
	products := admin.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.POST("/:id/image", h.Product.UploadImage)
		products.GET("/low-stock", h.Product.LowStock)
		products.DELETE("/:id", h.Product.Delete)
	}

	// Categories
	categories := admin.Group("/categories")
	{
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	// Users
	users := admin.Group("/users")
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PATCH("/:id/role", h.User.UpdateRole)
		users.DELETE("/:id", h.User.Delete)
	}

	// Messages
	messages := admin.Group("/messages")
	{
		messages.GET("", h.Message.List)
		messages.GET("/:id", h.Message.Get)
		messages.PATCH("/:id/status", h.Message.UpdateStatus)
		messages.DELETE("/:id", h.Message.Delete)
	}
}
