package main

import (
	"context"
	"errors"
	"os"

	"github.com/gofiber/fiber/v2/log"

	"github.com/artem13815/trello/pkg/app"
	"github.com/artem13815/trello/pkg/config"
	"github.com/artem13815/trello/pkg/maintenance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	app.SetupLogging(cfg.LogLevel)

	ctx := context.Background()
	deps, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	r := &maintenance.Runner{
		Schema: deps,
		Cards:  deps.Cards,
		Auth:   deps.Auth,
		Admin: maintenance.Admin{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			Name:     cfg.AdminName,
		},
		Out: os.Stdout,
	}
	err = r.Run(ctx, os.Args[1:])
	deps.Close()
	if err != nil {
		if !errors.Is(err, maintenance.ErrUnknownCommand) {
			log.Errorw("command failed", "command", os.Args[1:], "error", err)
		}
		os.Exit(1)
	}
}
