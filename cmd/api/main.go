package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/marubini/tillpoint-api/internal/application/service"
	"github.com/marubini/tillpoint-api/internal/config"
	"github.com/marubini/tillpoint-api/internal/infrastructure/database"
	"github.com/marubini/tillpoint-api/internal/infrastructure/repository"
	"github.com/marubini/tillpoint-api/internal/presentation/http/handler"
	"github.com/marubini/tillpoint-api/internal/presentation/http/routes"
	"github.com/marubini/tillpoint-api/pkg/utils"
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
	if err := database.SeedDefaultData(db, &cfg.POS); err != nil {
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
	terminalRepo := repository.NewTerminalRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	giftCardRepo := repository.NewGiftCardRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, categoryRepo)
	permissionGate := service.NewPermissionGate(userRepo, settingsRepo)
	cartService := service.NewCartService(permissionGate, productRepo, customerRepo, auditRepo, settingsRepo, cfg.POS.ApprovalTTL)
	shiftService := service.NewShiftService(shiftRepo, orderRepo)
	checkoutService := service.NewCheckoutService(cartService, shiftService, orderRepo, productRepo, giftCardRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, shiftService)
	auditService := service.NewAuditService(auditRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	storeService := service.NewStoreService(terminalRepo, customerRepo, giftCardRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Cart:     handler.NewCartHandler(cartService, authService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Shift:    handler.NewShiftHandler(shiftService),
		Order:    handler.NewOrderHandler(orderService, authService),
		Audit:    handler.NewAuditHandler(auditService),
		Settings: handler.NewSettingsHandler(settingsService),
		Store:    handler.NewStoreHandler(storeService),
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
