package main

import (
	"context"
	"log"
	"os"

	"github.com/agrimarket/agrimarket-api/internal/application/service"
	"github.com/agrimarket/agrimarket-api/internal/config"
	"github.com/agrimarket/agrimarket-api/internal/infrastructure/database"
	"github.com/agrimarket/agrimarket-api/internal/infrastructure/repository"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/handler"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/routes"
	"github.com/agrimarket/agrimarket-api/pkg/oauth"
	"github.com/agrimarket/agrimarket-api/pkg/storage"
	"github.com/agrimarket/agrimarket-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTransactionManager(db)

	// Initialize image storage
	var store storage.Storage
	if cfg.Storage.Driver == "s3" {
		store, err = storage.NewS3Storage(context.Background(), storage.S3Config{
			Region:          cfg.Storage.S3Region,
			Bucket:          cfg.Storage.S3Bucket,
			AccessKeyID:     cfg.Storage.S3AccessKey,
			SecretAccessKey: cfg.Storage.S3SecretKey,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
	} else {
		store = storage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.BaseURL)
	}

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	productService := service.NewProductService(productRepo, categoryRepo, store)
	categoryService := service.NewCategoryService(categoryRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, productRepo, invoiceRepo, userRepo, sequenceRepo, txManager)
	invoiceService := service.NewInvoiceService(invoiceRepo, orderRepo, paymentRepo, sequenceRepo, txManager)
	paymentService := service.NewPaymentService(paymentRepo, invoiceRepo, sequenceRepo, txManager)
	messageService := service.NewMessageService(messageRepo)
	userService := service.NewUserService(userRepo)
	dashboardService := service.NewDashboardService(orderRepo, invoiceRepo, paymentRepo, productRepo, userRepo, messageRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, googleOAuthService),
		Product:   handler.NewProductHandler(productService),
		Category:  handler.NewCategoryHandler(categoryService),
		Order:     handler.NewOrderHandler(orderService),
		Invoice:   handler.NewInvoiceHandler(invoiceService, paymentService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Message:   handler.NewMessageHandler(messageService),
		User:      handler.NewUserHandler(userService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
