package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManaClgLevelUp/revathi-duba/internal/config"
	"github.com/ManaClgLevelUp/revathi-duba/internal/handler"
	"github.com/ManaClgLevelUp/revathi-duba/internal/middleware"
	"github.com/ManaClgLevelUp/revathi-duba/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	GalleryHandler      *handler.GalleryHandler
	CollectionHandler   *handler.CollectionHandler
	FeedHandler         *handler.FeedHandler
	ContactHandler      *handler.ContactHandler
	AuthHandler         *handler.AuthHandler
	AdminGalleryHandler *handler.AdminGalleryHandler
	BatchUploadHandler  *handler.BatchUploadHandler
	AdminContactHandler *handler.AdminContactHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Public gallery reads and the realtime feed.
	if deps.GalleryHandler != nil {
		gallery := api.Group("/gallery")
		deps.GalleryHandler.Register(gallery)

		if deps.FeedHandler != nil {
			deps.FeedHandler.Register(gallery)
		}
	}

	if deps.CollectionHandler != nil {
		collections := api.Group("/collections")
		deps.CollectionHandler.Register(collections)
	}

	if deps.ContactHandler != nil {
		contact := api.Group("/contact", middleware.RateLimit("contact", 5, time.Minute))
		deps.ContactHandler.Register(contact)
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/admin/auth", middleware.RateLimit("login", 10, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	// Protected admin surface.
	admin := api.Group("/admin", jwtMiddleware)

	// Batches register first so "/gallery/batches" is not swallowed by
	// the "/gallery/:id" parameter route.
	if deps.BatchUploadHandler != nil {
		deps.BatchUploadHandler.Register(admin.Group("/gallery/batches"))
	}

	if deps.AdminGalleryHandler != nil {
		deps.AdminGalleryHandler.Register(admin.Group("/gallery"))
	}

	if deps.CollectionHandler != nil {
		deps.CollectionHandler.RegisterAdmin(admin.Group("/collections"))
	}

	if deps.AdminContactHandler != nil {
		deps.AdminContactHandler.Register(admin.Group("/contacts"))
	}
}
