package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/givehub/marketplace-api/internal/api/http/handlers"
	"github.com/givehub/marketplace-api/internal/auth"
	"github.com/givehub/marketplace-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalog        *handlers.CatalogHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Authenticate, cfg.Auth.Me)

	app.Get("/products", cfg.Catalog.ListProducts)
	app.Get("/products/:id", cfg.Catalog.GetProduct)
	app.Get("/charities", cfg.Catalog.ListCharities)
	app.Get("/categories", cfg.Catalog.ListCategories)

	app.Post("/products", cfg.AuthMiddleware.Authenticate, cfg.Catalog.CreateProduct)
	app.Get("/me/products", cfg.AuthMiddleware.Authenticate, cfg.Catalog.ListOwnProducts)

	admin := app.Group("/admin", cfg.AuthMiddleware.Authenticate, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/products/pending", cfg.Admin.ListPendingProducts)
	admin.Patch("/products/:id/status", cfg.Admin.ModerateProduct)
	admin.Post("/charities", cfg.Admin.CreateCharity)
	admin.Get("/accounts", cfg.Admin.ListAccounts)
	admin.Patch("/accounts/:id/verify", cfg.Admin.VerifyAccount)
}
