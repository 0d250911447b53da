package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"propshare/internal/config"
	"propshare/internal/db"
	"propshare/internal/handlers"
	"propshare/internal/handlers/api"
	"propshare/internal/middleware"
	"propshare/internal/models"
	"propshare/internal/share"
)

// RegisterRoutes registers all application routes.
func RegisterRoutes(ctx context.Context, s *Server, database *db.DB, roles *config.YAMLConfig) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database)

	// Core services
	shares := share.NewService(database, s.Cfg.ShareDefaultExpiry, s.Cfg.ShareMaxExpiry)

	// Initialize handlers
	shareHandler := api.NewShareHandler(database, s.Cfg, shares)
	resolveHandler := api.NewResolveHandler(shares)
	analyticsHandler := api.NewAnalyticsHandler(database)
	propertyHandler := api.NewPropertyHandler(database)
	userHandler := api.NewUserHandler(database)
	healthHandler := api.NewHealthHandler(database)
	portalHandler := handlers.NewPortalHandler(shares, s.Cfg)

	// Auth routes - OIDC is required for the management surface
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. All management users must be authenticated.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, roles, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Public share resolution - no auth, these are the links sent to clients
	s.App.Get("/share/:token", portalHandler.View)
	s.App.Post("/share/:token", portalHandler.SubmitInfo)
	s.App.Get("/api/share/:token", resolveHandler.Resolve)
	s.App.Post("/api/share/:token", resolveHandler.SubmitClientInfo)

	// Share management routes
	s.App.Post("/api/shares", authMiddleware.RequireCapability(models.CapManageProperties), shareHandler.Create)
	s.App.Get("/api/shares", authMiddleware.RequireCapability(models.CapManageProperties), shareHandler.List)
	s.App.Get("/api/shares/analytics", authMiddleware.RequireCapability(models.CapManageProperties), analyticsHandler.Get)
	s.App.Get("/api/shares/:id", authMiddleware.RequireCapability(models.CapManageProperties), shareHandler.Get)
	s.App.Put("/api/shares/:id", authMiddleware.RequireCapability(models.CapManageProperties), shareHandler.Update)
	s.App.Delete("/api/shares/:id", authMiddleware.RequireCapability(models.CapManageProperties), shareHandler.Deactivate)

	// Property routes
	s.App.Post("/api/properties", authMiddleware.RequireCapability(models.CapManageProperties), propertyHandler.Create)
	s.App.Get("/api/properties", authMiddleware.RequireCapability(models.CapViewProperties), propertyHandler.List)
	s.App.Get("/api/properties/:id", authMiddleware.RequireCapability(models.CapViewProperties), propertyHandler.Get)
	s.App.Put("/api/properties/:id", authMiddleware.RequireCapability(models.CapManageProperties), propertyHandler.Update)
	s.App.Delete("/api/properties/:id", authMiddleware.RequireCapability(models.CapDeleteProperties), propertyHandler.Delete)

	// User administration (master only)
	s.App.Get("/api/users", authMiddleware.RequireCapability(models.CapManageUsers), userHandler.List)
	s.App.Put("/api/users/:id/role", authMiddleware.RequireCapability(models.CapManageUsers), userHandler.UpdateRole)
	s.App.Delete("/api/users/:id", authMiddleware.RequireCapability(models.CapManageUsers), userHandler.Delete)

	// Operational endpoints
	s.App.Get("/api/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
