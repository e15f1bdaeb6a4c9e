package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/steelstack/crm-api/docs"
	"github.com/steelstack/crm-api/internal/auth"
	"github.com/steelstack/crm-api/internal/config"
	"github.com/steelstack/crm-api/internal/database"
	"github.com/steelstack/crm-api/internal/http/handler"
	"github.com/steelstack/crm-api/internal/http/middleware"
	"github.com/steelstack/crm-api/internal/http/router"
	"github.com/steelstack/crm-api/internal/logger"
	"github.com/steelstack/crm-api/internal/mail"
	"github.com/steelstack/crm-api/internal/pdf"
	"github.com/steelstack/crm-api/internal/repository"
	"github.com/steelstack/crm-api/internal/service"
	"github.com/steelstack/crm-api/internal/shipping"
	"go.uber.org/zap"
)

// @title SteelStack CRM API
// @version 1.0
// @description Single-tenant CRM for contacts, deals, quotes and shipping estimates

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// sqlite installs migrate on startup; postgres deployments use
	// cmd/migrate against the goose files
	if cfg.Database.Driver == "sqlite" || cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Schema migrated", zap.String("driver", cfg.Database.Driver))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	dealRepo := repository.NewDealRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	productRepo := repository.NewProductRepository(db)
	salespersonRepo := repository.NewSalespersonRepository(db)
	mailTokenRepo := repository.NewMailTokenRepository(db)

	// Auth plumbing
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(&cfg.Auth, cfg.App.Name)
	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	authMiddleware := auth.NewMiddleware(tokens, authService, log)

	// External clients
	geocoder := shipping.NewGeocoder(cfg.Shipping.GeocoderURL, cfg.Shipping.RequestTimeoutDuration())
	routeClient := shipping.NewRouter(cfg.Shipping.RoutingURL, cfg.Shipping.RequestTimeoutDuration())
	outlookClient := mail.NewOutlookClient("", cfg.Server.RequestTimeoutDuration())
	gmailClient := mail.NewGmailClient("", cfg.Server.RequestTimeoutDuration())

	// Initialize services
	userService := service.NewUserService(userRepo, hasher, log)
	contactService := service.NewContactService(contactRepo, companyRepo, log)
	companyService := service.NewCompanyService(companyRepo, log)
	dealService := service.NewDealService(dealRepo, contactRepo, log)
	quoteService := service.NewQuoteService(quoteRepo, contactRepo, productRepo, salespersonRepo, db, log)
	productService := service.NewProductService(productRepo, log)
	salespersonService := service.NewSalespersonService(salespersonRepo, log)
	leadService := service.NewLeadService(contactRepo, log)
	analyticsService := service.NewAnalyticsService(dealRepo, contactRepo, quoteRepo, db, log)
	shippingService := service.NewShippingService(geocoder, routeClient, &cfg.Shipping, log)
	mailService := service.NewMailService(mailTokenRepo, outlookClient, gmailClient, cfg, log)

	// Middleware and handlers
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	quoteRenderer := pdf.NewQuoteRenderer(cfg.App.Name)

	authHandler := handler.NewAuthHandler(authService, log)
	userHandler := handler.NewUserHandler(userService, log)
	contactHandler := handler.NewContactHandler(contactService, log)
	companyHandler := handler.NewCompanyHandler(companyService, log)
	dealHandler := handler.NewDealHandler(dealService, log)
	quoteHandler := handler.NewQuoteHandler(quoteService, quoteRenderer, log)
	productHandler := handler.NewProductHandler(productService, log)
	salespersonHandler := handler.NewSalespersonHandler(salespersonService, log)
	shippingHandler := handler.NewShippingHandler(shippingService, log)
	leadHandler := handler.NewLeadHandler(leadService, log)
	dashboardHandler := handler.NewDashboardHandler(analyticsService, log)
	mailHandler := handler.NewMailHandler(mailService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		userHandler,
		contactHandler,
		companyHandler,
		dealHandler,
		quoteHandler,
		productHandler,
		salespersonHandler,
		shippingHandler,
		leadHandler,
		dashboardHandler,
		mailHandler,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
