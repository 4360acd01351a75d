package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bahafit/bahafit/internal/api/http/handlers"
	"github.com/bahafit/bahafit/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	AdminUsers        *handlers.AdminUsersHandler
	AdminCatalog      *handlers.AdminCatalogHandler
	Catalog           *handlers.CatalogHandler
	Registrations     *handlers.RegistrationsHandler
	Dashboard         *handlers.DashboardHandler
	SessionMiddleware *auth.SessionMiddleware
	Gate              *auth.Gate
}

// RegisterRoutes wires HTTP routes. The session middleware resolves the
// caller once per request; the gate then applies page-level policy, and the
// admin API handlers re-validate the role themselves.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.SessionMiddleware.Handle)
	app.Use(cfg.Gate.Handle)

	api := app.Group("/api")

	api.Post("/auth/register", cfg.Auth.Register)
	api.Post("/auth/login", cfg.Auth.Login)

	api.Get("/events", cfg.Catalog.ListEvents)
	api.Get("/events/:slug", cfg.Catalog.GetEvent)
	api.Get("/listings", cfg.Catalog.ListListings)
	api.Get("/listings/:slug", cfg.Catalog.GetListing)

	api.Post("/registrations", cfg.Registrations.Create)
	api.Get("/registrations/user", cfg.Registrations.ListMine)
	api.Get("/dashboard", cfg.Dashboard.Get)

	admin := api.Group("/admin")
	admin.Get("/users", cfg.AdminUsers.List)
	admin.Get("/users/:id", cfg.AdminUsers.Get)
	admin.Patch("/users/:id", cfg.AdminUsers.Update)
	admin.Delete("/users/:id", cfg.AdminUsers.Delete)

	admin.Get("/events", cfg.AdminCatalog.ListEvents)
	admin.Get("/events/:id", cfg.AdminCatalog.GetEvent)
	admin.Patch("/events/:id", cfg.AdminCatalog.UpdateEvent)
	admin.Delete("/events/:id", cfg.AdminCatalog.DeleteEvent)

	admin.Get("/listings", cfg.AdminCatalog.ListListings)
	admin.Get("/listings/:id", cfg.AdminCatalog.GetListing)
	admin.Patch("/listings/:id", cfg.AdminCatalog.UpdateListing)
	admin.Delete("/listings/:id", cfg.AdminCatalog.DeleteListing)
}
