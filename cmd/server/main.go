// @title         trello cards API
// @version       1.0
// @description   Minimal task board: registration, login and an admin-only card listing.
// @BasePath      /
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token. Both "Bearer <JWT>" and "<JWT>" are accepted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"

	_ "github.com/artem13815/trello/docs"

	// internal imports
	"github.com/artem13815/trello/api/http"
	"github.com/artem13815/trello/api/http/handlers"
	"github.com/artem13815/trello/pkg/app"
	"github.com/artem13815/trello/pkg/config"
	"github.com/artem13815/trello/pkg/security/jwt"
)

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	app.SetupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer deps.Close()

	// Make sure the tables exist before serving.
	if err := deps.CreateSchema(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	server := fiber.New(fiber.Config{AppName: "trello"})
	server.Use(recover.New())
	server.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	server.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))

	http.Register(server, http.Routes{
		Auth:    handlers.NewAuthHandler(deps.Auth),
		Health:  handlers.NewHealthHandler(deps.Health),
		Cards:   handlers.NewCardHandler(deps.Cards),
		AuthMW:  jwt.NewAuthMiddleware(deps.Tokens),
		AdminMW: handlers.AdminOnly(deps.Auth, cfg.ForbiddenAs403),
	})

	// Swagger UI
	server.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		if err := server.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Errorw("shutdown", "error", err)
		}
	}()

	log.Infow("HTTP server listening", "port", cfg.Port, "driver", cfg.DBDriver)
	if err := server.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
