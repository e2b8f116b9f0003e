package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/proposalforge/agency-api/internal/config"
	"github.com/proposalforge/agency-api/internal/presentation/http/handler"
	"github.com/proposalforge/agency-api/internal/presentation/http/middleware"
	"github.com/proposalforge/agency-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth   *handler.AuthHandler
	Client *handler.ClientHandler
	Quote  *handler.QuoteHandler
	Draft  *handler.DraftHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
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

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile routes
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Clients
	registerClientRoutes(protected, h)

	// Stored quotes
	registerQuoteRoutes(protected, h)

	// Wizard draft
	registerDraftRoutes(protected, h)
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerQuoteRoutes(protected *gin.RouterGroup, h *Handlers) {
	quotes := protected.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.GET("/number/:quoteNumber", h.Quote.GetByNumber)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id/status", h.Quote.UpdateStatus)
		quotes.DELETE("/:id", h.Quote.Delete)
	}
}

func registerDraftRoutes(protected *gin.RouterGroup, h *Handlers) {
	d := protected.Group("/drafts/current")
	{
		d.GET("", h.Draft.Get)
		d.PUT("", h.Draft.Replace)
		d.DELETE("", h.Draft.Clear)
		d.POST("/save", h.Draft.Save)

		// Wizard navigation
		d.POST("/steps/next", h.Draft.Next)
		d.POST("/steps/prev", h.Draft.Prev)
		d.POST("/steps/goto", h.Draft.GoTo)

		// Line items
		d.POST("/items", h.Draft.AddItem)
		d.PATCH("/items/:id", h.Draft.UpdateItem)
		d.DELETE("/items/:id", h.Draft.RemoveItem)

		// Milestones
		d.POST("/milestones", h.Draft.AddMilestone)
		d.PATCH("/milestones/:id", h.Draft.UpdateMilestone)
		d.DELETE("/milestones/:id", h.Draft.RemoveMilestone)

		// Payment terms
		d.POST("/payment-terms", h.Draft.AddPaymentTerm)
		d.PATCH("/payment-terms/:id", h.Draft.UpdatePaymentTerm)
		d.DELETE("/payment-terms/:id", h.Draft.RemovePaymentTerm)

		// Scope arrays
		d.POST("/scope/:field", h.Draft.AppendScope)
		d.PUT("/scope/:field", h.Draft.SetScope)
		d.DELETE("/scope/:field", h.Draft.RemoveScope)

		// Templates
		d.POST("/templates/pricing", h.Draft.ApplyPricingTemplate)
		d.POST("/templates/milestones", h.Draft.ApplyMilestoneTemplate)
		d.POST("/templates/payments", h.Draft.ApplyPaymentTemplate)

		// Projection
		d.GET("/preview", h.Draft.Preview)
		d.GET("/pdf", h.Draft.PDF)

		// Submission
		d.POST("/submit", h.Draft.Submit)
	}

	// Template catalog browsing
	protected.GET("/templates", h.Draft.ListTemplates)
}
