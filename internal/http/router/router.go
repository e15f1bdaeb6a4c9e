package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/steelstack/crm-api/internal/auth"
	"github.com/steelstack/crm-api/internal/config"
	"github.com/steelstack/crm-api/internal/database"
	"github.com/steelstack/crm-api/internal/http/handler"
	"github.com/steelstack/crm-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/steelstack/crm-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	db                 *gorm.DB
	authMiddleware     *auth.Middleware
	rateLimiter        *middleware.RateLimiter
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	contactHandler     *handler.ContactHandler
	companyHandler     *handler.CompanyHandler
	dealHandler        *handler.DealHandler
	quoteHandler       *handler.QuoteHandler
	productHandler     *handler.ProductHandler
	salespersonHandler *handler.SalespersonHandler
	shippingHandler    *handler.ShippingHandler
	leadHandler        *handler.LeadHandler
	dashboardHandler   *handler.DashboardHandler
	mailHandler        *handler.MailHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	contactHandler *handler.ContactHandler,
	companyHandler *handler.CompanyHandler,
	dealHandler *handler.DealHandler,
	quoteHandler *handler.QuoteHandler,
	productHandler *handler.ProductHandler,
	salespersonHandler *handler.SalespersonHandler,
	shippingHandler *handler.ShippingHandler,
	leadHandler *handler.LeadHandler,
	dashboardHandler *handler.DashboardHandler,
	mailHandler *handler.MailHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		db:                 db,
		authMiddleware:     authMiddleware,
		rateLimiter:        rateLimiter,
		authHandler:        authHandler,
		userHandler:        userHandler,
		contactHandler:     contactHandler,
		companyHandler:     companyHandler,
		dealHandler:        dealHandler,
		quoteHandler:       quoteHandler,
		productHandler:     productHandler,
		salespersonHandler: salespersonHandler,
		shippingHandler:    shippingHandler,
		leadHandler:        leadHandler,
		dashboardHandler:   dashboardHandler,
		mailHandler:        mailHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Readiness probe, checks the database
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "healthy",
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// First-run bootstrap, open until the first user exists
	r.Get("/setup", rt.authHandler.SetupStatus)
	r.Post("/setup", rt.authHandler.Setup)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)
		r.Post("/auth/logout", rt.authHandler.Logout)
		r.With(rt.rateLimiter.LimitLead).Post("/leads", rt.leadHandler.Submit)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.RequireAuth)

			// Auth
			r.Get("/auth/session", rt.authHandler.Session)

			// Users (admin only)
			r.Route("/users", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Get("/", rt.userHandler.List)
				r.Post("/", rt.userHandler.Create)
				r.Get("/{id}", rt.userHandler.Get)
				r.Put("/{id}", rt.userHandler.Update)
				r.Delete("/{id}", rt.userHandler.Deactivate)
			})

			// Contacts
			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", rt.contactHandler.List)
				r.Post("/", rt.contactHandler.Create)
				r.Get("/{id}", rt.contactHandler.Get)
				r.Put("/{id}", rt.contactHandler.Update)
				r.Delete("/{id}", rt.contactHandler.Delete)
				r.Post("/{id}/touch", rt.contactHandler.Touch)
			})

			// Companies
			r.Route("/companies", func(r chi.Router) {
				r.Get("/", rt.companyHandler.List)
				r.Post("/", rt.companyHandler.Create)
				r.Get("/{id}", rt.companyHandler.Get)
				r.Put("/{id}", rt.companyHandler.Update)
				r.Delete("/{id}", rt.companyHandler.Delete)
			})

			// Deals
			r.Route("/deals", func(r chi.Router) {
				r.Get("/", rt.dealHandler.List)
				r.Post("/", rt.dealHandler.Create)
				r.Get("/pipeline", rt.dealHandler.Pipeline)
				r.Get("/{id}", rt.dealHandler.Get)
				r.Put("/{id}", rt.dealHandler.Update)
				r.Delete("/{id}", rt.dealHandler.Delete)
				r.Put("/{id}/stage", rt.dealHandler.UpdateStage)
				r.Get("/{id}/history", rt.dealHandler.History)
				r.Post("/{id}/contacts/{contactId}", rt.dealHandler.LinkContact)
				r.Delete("/{id}/contacts/{contactId}", rt.dealHandler.UnlinkContact)
			})

			// Quotes
			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", rt.quoteHandler.List)
				r.Post("/", rt.quoteHandler.Create)
				r.Get("/{id}", rt.quoteHandler.Get)
				r.Put("/{id}", rt.quoteHandler.Update)
				r.Delete("/{id}", rt.quoteHandler.Delete)
				r.Post("/{id}/send", rt.quoteHandler.Send)
				r.Put("/{id}/status", rt.quoteHandler.UpdateStatus)
				r.Get("/{id}/pdf", rt.quoteHandler.PDF)
			})

			// Products
			r.Route("/products", func(r chi.Router) {
				r.Get("/", rt.productHandler.List)
				r.Post("/", rt.productHandler.Create)
				r.Get("/{id}", rt.productHandler.Get)
				r.Put("/{id}", rt.productHandler.Update)
				r.Delete("/{id}", rt.productHandler.Deactivate)
			})

			// Salespersons
			r.Route("/salespersons", func(r chi.Router) {
				r.Get("/", rt.salespersonHandler.List)
				r.Post("/", rt.salespersonHandler.Create)
				r.Get("/{id}", rt.salespersonHandler.Get)
				r.Put("/{id}", rt.salespersonHandler.Update)
				r.Delete("/{id}", rt.salespersonHandler.Delete)
			})

			// Shipping estimates
			r.Post("/shipping/estimate", rt.shippingHandler.Estimate)

			// Dashboard
			r.Get("/dashboard", rt.dashboardHandler.Dashboard)
			r.Get("/dashboard/deals-by-month", rt.dashboardHandler.DealsByMonth)
			r.Get("/dashboard/leads-by-month", rt.dashboardHandler.LeadsByMonth)

			// Mail integration
			r.Route("/mail", func(r chi.Router) {
				r.Get("/status", rt.mailHandler.Status)
				r.Get("/{provider}/connect", rt.mailHandler.Connect)
				r.Get("/{provider}/callback", rt.mailHandler.Callback)
				r.Get("/{provider}/messages", rt.mailHandler.Messages)
				r.Get("/{provider}/messages/{messageId}", rt.mailHandler.Message)
				r.Delete("/{provider}", rt.mailHandler.Disconnect)
			})
		})
	})

	return r
}
