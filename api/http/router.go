package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/trello/api/http/handlers"
)

// Routes bundles the handlers and middlewares Register wires up.
type Routes struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Cards   *handlers.CardHandler
	AuthMW  fiber.Handler
	AdminMW fiber.Handler
}

// Register wires all HTTP routes onto given Fiber app.
// Trailing slashes are optional (fiber routing is non-strict by default).
func Register(app *fiber.App, r Routes) {
	app.Get("/", handlers.Index)

	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", r.Health.Health)
	app.Get("/ready", r.Health.Ready)

	a := app.Group("/auth")
	a.Post("/register", r.Auth.Register)
	a.Post("/login", r.Auth.Login)

	cg := app.Group("/cards", r.AuthMW, r.AdminMW)
	cg.Get("/", r.Cards.List)
}
