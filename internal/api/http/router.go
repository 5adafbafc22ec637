package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bakery-crew/internal/api/http/handlers"
	"github.com/spec-kit/bakery-crew/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Users     *handlers.UsersHandler
	Admin     *handlers.AdminHandler
	Messages  *handlers.MessagesHandler
	Events    *handlers.EventsHandler
	Donations *handlers.DonationsHandler
	Session   *auth.SessionResolver
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to the Bakery Crew backend! 🧁")
	})

	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("BakeryHub API is running!")
	})

	api.Post("/register", cfg.Auth.Register)
	api.Post("/login", cfg.Auth.Login)

	protected := cfg.Session.Handle
	api.Delete("/logout", protected, cfg.Auth.Logout)
	api.Get("/protected", protected, cfg.Auth.Me)
	api.Patch("/users/me", protected, cfg.Auth.UpdateMe)
	api.Delete("/users/:id", protected, cfg.Auth.Delete)
	api.Get("/users", protected, cfg.Users.List)

	admin := api.Group("/admin", protected, auth.RequireElevated())
	admin.Patch("/users/:id/approve", cfg.Admin.Approve)
	admin.Patch("/users/:id/assign-manager", cfg.Admin.AssignManager)
	admin.Patch("/users/:id/revoke-manager", cfg.Admin.RevokeManager)
	admin.Get("/users/pending", cfg.Admin.Pending)

	messages := api.Group("/messages", protected)
	messages.Post("/", cfg.Messages.Send)
	messages.Get("/inbox", cfg.Messages.Inbox)
	messages.Get("/sent", cfg.Messages.Sent)
	messages.Get("/:id", cfg.Messages.Get)
	messages.Patch("/:id/read", cfg.Messages.MarkRead)

	events := api.Group("/events", protected)
	events.Post("/", cfg.Events.Create)
	events.Get("/", cfg.Events.List)
	events.Get("/:eventId", cfg.Events.Get)
	events.Delete("/:eventId", cfg.Events.Delete)
	events.Post("/:eventId/apply", cfg.Events.Apply)
	events.Delete("/:eventId/cancel", cfg.Events.CancelApplication)
	events.Get("/:eventId/applicants", cfg.Events.Applicants)

	donations := api.Group("/donations", protected)
	donations.Post("/", cfg.Donations.Create)
	donations.Get("/active", cfg.Donations.ListActive)
	donations.Get("/", cfg.Donations.List)
	donations.Get("/:donationId", cfg.Donations.Get)
	donations.Post("/:donationId/confirm-payment", cfg.Donations.ConfirmPayment)
	donations.Get("/:donationId/applicants", cfg.Donations.Applicants)
	donations.Delete("/:donationId", cfg.Donations.Delete)
}
