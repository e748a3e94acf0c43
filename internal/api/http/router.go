package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/brandoverts/brandoverts-api/internal/api/http/handlers"
	"github.com/brandoverts/brandoverts-api/internal/auth"
	"github.com/brandoverts/brandoverts-api/internal/observability"
)

// Handlers bundles every route handler the router mounts.
type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Blogs     *handlers.BlogsHandler
	Leads     *handlers.LeadsHandler
	Enquiries *handlers.EnquiriesHandler
	Pages     *handlers.PagesHandler
}

// NewApp builds the Fiber app with the shared middleware stack.
func NewApp(logger *zap.Logger, metrics *observability.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "brandoverts-api",
		ErrorHandler: errorHandler(metrics),
	})

	app.Use(requestID())
	app.Use(recoverPanics(logger))
	app.Use(requestLogger(logger, metrics))

	return app
}

// RegisterRoutes mounts the public site API, the guarded CRM API and the
// CRM page shells.
func RegisterRoutes(app *fiber.App, h Handlers, guard *auth.Guard) {
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", h.Auth.Signup)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/logout", guard.RequireAuth, h.Auth.Logout)
	authGroup.Get("/me", h.Auth.Me)
	authGroup.Get("/profile", h.Auth.GetProfile)
	authGroup.Put("/profile", h.Auth.UpdateProfile)

	// Blog reads are public. Write handlers verify the session cookie
	// against the user collection themselves.
	blogs := api.Group("/blogs")
	blogs.Get("/", h.Blogs.List)
	blogs.Post("/", h.Blogs.Create)
	blogs.Get("/:id", h.Blogs.Get)
	blogs.Put("/:id", h.Blogs.Update)
	blogs.Delete("/:id", h.Blogs.Delete)
	blogs.Post("/:id/like", h.Blogs.ToggleLike)
	blogs.Get("/:id/comments", h.Blogs.ListComments)
	blogs.Post("/:id/comments", h.Blogs.AddComment)
	blogs.Post("/:id/comments/:commentId/like", h.Blogs.ToggleCommentLike)

	// Every CRM endpoint sits behind the lightweight token guard.
	leads := api.Group("/leads", guard.RequireAuth)
	leads.Get("/export/excel", h.Leads.ExportExcel)
	leads.Get("/", h.Leads.List)
	leads.Post("/", h.Leads.Create)
	leads.Get("/:id", h.Leads.Get)
	leads.Patch("/:id", h.Leads.Update)
	leads.Delete("/:id", h.Leads.Delete)
	leads.Post("/:id/steps", h.Leads.AddStep)
	leads.Post("/:id/reminder", h.Leads.AddReminder)

	api.Get("/reminders", guard.RequireAuth, h.Leads.ListReminders)

	api.Post("/enquiry", h.Enquiries.Create)

	// CRM pages: everything under /leads except the login page redirects
	// to /leads/login when the cookie is missing or invalid.
	pages := app.Group("/leads", guard.Pages("/leads/login"))
	pages.Get("/login", h.Pages.Login)
	pages.Get("/", h.Pages.Dashboard)
	pages.Get("/*", h.Pages.Dashboard)
}
