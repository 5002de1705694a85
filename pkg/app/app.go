// Package app wires storage, repositories and use cases from Config. Both
// the HTTP server and the maintenance CLI start from here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/artem13815/trello/pkg/auth"
	"github.com/artem13815/trello/pkg/card"
	"github.com/artem13815/trello/pkg/config"
	"github.com/artem13815/trello/pkg/health"
	"github.com/artem13815/trello/pkg/health/checkers"
	"github.com/artem13815/trello/pkg/migrations"
	pgrepo "github.com/artem13815/trello/pkg/repository/postgres"
	sqliterepo "github.com/artem13815/trello/pkg/repository/sqlite"
	"github.com/artem13815/trello/pkg/security/jwt"
	"github.com/artem13815/trello/pkg/security/password"
	"github.com/artem13815/trello/pkg/storage/postgres"
	"github.com/artem13815/trello/pkg/storage/sqlite"
)

// Deps holds everything the entry points need.
type Deps struct {
	Config  config.Config
	Tokens  *jwt.Service
	Auth    auth.AuthUseCase
	Cards   card.UseCase
	Health  health.ReadinessUseCase
	db      *sql.DB
	dialect string
	closers []func()
}

// New opens the configured store and builds the use cases.
func New(ctx context.Context, cfg config.Config) (*Deps, error) {
	tokens, err := jwt.NewService(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return nil, err
	}
	hasher, err := password.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("init hasher: %w", err)
	}

	d := &Deps{Config: cfg, Tokens: tokens}
	var (
		users auth.UserRepository
		cards card.Repository
	)
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		d.db, d.dialect = db, migrations.DialectSQLite
		d.closers = append(d.closers, func() { _ = db.Close() })
		users = sqliterepo.NewUserRepository(db)
		cards = sqliterepo.NewCardRepository(db)
		d.Health = health.NewService(checkers.NewSQLChecker("sqlite", db))
	default:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		db := postgres.SQLDB(pool)
		d.db, d.dialect = db, migrations.DialectPostgres
		d.closers = append(d.closers, func() { _ = db.Close() }, pool.Close)
		users = pgrepo.NewUserRepository(pool)
		cards = pgrepo.NewCardRepository(pool)
		d.Health = health.NewService(checkers.NewPostgresChecker(pool))
	}

	d.Auth = auth.NewAuthService(users, hasher, tokens)
	d.Cards = card.NewService(cards)
	return d, nil
}

// CreateSchema applies the migrations.
func (d *Deps) CreateSchema(ctx context.Context) error {
	return migrations.Up(ctx, d.db, d.dialect)
}

// DropSchema rolls every migration back.
func (d *Deps) DropSchema(ctx context.Context) error {
	return migrations.Reset(ctx, d.db, d.dialect)
}

// Close releases the store in reverse open order.
func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// SetupLogging sets the fiber logger level from a name like "debug" or "warn".
func SetupLogging(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		log.SetLevel(log.LevelTrace)
	case "debug":
		log.SetLevel(log.LevelDebug)
	case "warn", "warning":
		log.SetLevel(log.LevelWarn)
	case "error":
		log.SetLevel(log.LevelError)
	default:
		log.SetLevel(log.LevelInfo)
	}
}
