package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marubini/tillpoint-api/internal/config"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	domainRepo "github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/internal/presentation/http/handler"
	"github.com/marubini/tillpoint-api/internal/presentation/http/middleware"
	"github.com/marubini/tillpoint-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Shift    *handler.ShiftHandler
	Order    *handler.OrderHandler
	Audit    *handler.AuditHandler
	Settings *handler.SettingsHandler
	Store    *handler.StoreHandler
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
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	// Settings
	protected.GET("/settings", h.Settings.Get)
	protected.PATCH("/settings", middleware.RequireRole(enum.RoleAdmin), h.Settings.Update)

	// Catalog
	registerProductRoutes(protected, h)

	// Terminal-scoped cart, checkout, and shift routes
	registerTerminalRoutes(protected, h, deps)

	// Orders
	registerOrderRoutes(protected, h)

	// Audit log
	protected.GET("/audit-entries", middleware.RequireRole(enum.RoleManager), h.Audit.List)

	// Store administration
	registerStoreRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/stock", h.Product.Stock)
	}
	protected.GET("/categories", h.Product.Categories)
}

func registerTerminalRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	terminal := protected.Group("/terminals/:terminalID")

	cart := terminal.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/lines", h.Cart.AddLine)
		cart.PATCH("/lines/:lineID/quantity", h.Cart.UpdateQuantity)
		cart.PATCH("/lines/:lineID/seat", h.Cart.AssignSeat)
		cart.PUT("/lines/:lineID/modifiers", h.Cart.SetModifiers)
		cart.POST("/lines/:lineID/discount", h.Cart.LineDiscount)
		cart.POST("/lines/:lineID/price-override", h.Cart.OverridePrice)
		cart.POST("/lines/:lineID/void", h.Cart.VoidLine)
		cart.POST("/discount", h.Cart.OrderDiscount)
		cart.DELETE("/discount", h.Cart.RemoveOrderDiscount)
		cart.POST("/tip", h.Cart.Tip)
		cart.POST("/customer", h.Cart.Customer)
		cart.PATCH("/info", h.Cart.Info)
	}

	checkout := terminal.Group("/checkout")
	{
		checkout.POST("", h.Checkout.Begin)
		checkout.GET("", h.Checkout.Session)
		checkout.DELETE("", h.Checkout.Cancel)
		checkout.POST("/tenders", h.Checkout.Tender)
		checkout.POST("/split/even", h.Checkout.SplitEven)
		checkout.GET("/split/seats", h.Checkout.SplitBySeat)
		checkout.POST("/split/items", h.Checkout.SplitItems)
		// Completion moves stock and gift card balances, so retries must
		// replay the original response instead of double-charging.
		checkout.POST("/complete", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Checkout.Complete)
	}

	shifts := terminal.Group("/shifts")
	{
		shifts.POST("", h.Shift.Open)
		shifts.GET("/current", h.Shift.Current)
		shifts.POST("/movements", h.Shift.Movement)
		shifts.POST("/close", h.Shift.Close)
	}

	// Approvals are not terminal-scoped: a manager can resolve a parked
	// command from any station.
	protected.POST("/approvals", h.Cart.Approve)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/return", middleware.RequireRole(enum.RoleManager), h.Order.Return)
	}

	shifts := protected.Group("/shifts")
	{
		shifts.GET("", h.Shift.List)
		shifts.GET("/:id/z-report", h.Shift.ZReport)
	}
}

func registerStoreRoutes(protected *gin.RouterGroup, h *Handlers) {
	terminals := protected.Group("/store/terminals")
	{
		terminals.GET("", h.Store.ListTerminals)
		terminals.POST("", middleware.RequireRole(enum.RoleAdmin), h.Store.RegisterTerminal)
	}

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Store.ListCustomers)
		customers.POST("", h.Store.CreateCustomer)
	}

	giftCards := protected.Group("/gift-cards")
	{
		giftCards.POST("", middleware.RequireRole(enum.RoleManager), h.Store.IssueGiftCard)
		giftCards.GET("/:cardNo", h.Store.GetGiftCard)
	}
}
