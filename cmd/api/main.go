package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/proposalforge/agency-api/internal/application/catalog"
	"github.com/proposalforge/agency-api/internal/application/draft"
	"github.com/proposalforge/agency-api/internal/application/render"
	"github.com/proposalforge/agency-api/internal/application/service"
	"github.com/proposalforge/agency-api/internal/config"
	"github.com/proposalforge/agency-api/internal/infrastructure/database"
	"github.com/proposalforge/agency-api/internal/infrastructure/draftstore"
	"github.com/proposalforge/agency-api/internal/infrastructure/repository"
	"github.com/proposalforge/agency-api/internal/presentation/http/handler"
	"github.com/proposalforge/agency-api/internal/presentation/http/routes"
	"github.com/proposalforge/agency-api/pkg/email"
	"github.com/proposalforge/agency-api/pkg/utils"
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

	// Open the local draft recovery store
	store, err := draftstore.Open(cfg.DraftStore.Path)
	if err != nil {
		log.Fatalf("Failed to open draft store: %v", err)
	}
	defer store.Close()

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	clientService := service.NewClientService(clientRepo)
	quoteService := service.NewQuoteService(quoteRepo, clientRepo, emailService)

	// Wizard session: one working draft, recovered from the local store
	session := draft.NewSession(store, cfg.DraftStore.AutosaveDebounce)
	defer session.Close()
	if session.Recovered() {
		log.Println("Recovered a draft quote from the local store")
	}

	renderCfg := render.Config{
		CompanyName:  cfg.Company.Name,
		Email:        cfg.Company.Email,
		Phone:        cfg.Company.Phone,
		Website:      cfg.Company.Website,
		DefaultTerms: cfg.Company.DefaultTerms,
		FooterText:   cfg.Company.FooterText,
		BrandColor:   cfg.Company.BrandColor,
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Client: handler.NewClientHandler(clientService),
		Quote:  handler.NewQuoteHandler(quoteService),
		Draft:  handler.NewDraftHandler(session, catalog.New(), renderCfg, quoteService, clientRepo),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
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
	}
}
