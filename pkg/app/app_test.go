package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/trello/pkg/config"
	"github.com/artem13815/trello/pkg/security/jwt"
)

func sqliteConfig(t *testing.T) config.Config {
	return config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "trello.db"),
		JWTSecret:  "s",
		JWTIssuer:  "trello",
		BcryptCost: 4,
	}
}

func TestNewSQLiteLifecycle(t *testing.T) {
	ctx := context.Background()
	d, err := New(ctx, sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(d.Close)

	require.NoError(t, d.CreateSchema(ctx))
	require.NoError(t, d.Health.Ready(ctx))

	_, err = d.Cards.Seed(ctx)
	require.NoError(t, err)
	n, err := d.Cards.CountByStatus(ctx, "Ongoing")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = d.Auth.Register(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)
	res, err := d.Auth.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	isAdmin, err := d.Auth.Authorize(ctx, res.Token)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	require.NoError(t, d.DropSchema(ctx))
	_, err = d.Cards.CountByStatus(ctx, "Ongoing")
	assert.Error(t, err)
}

func TestNewRequiresSecret(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.JWTSecret = ""
	_, err := New(context.Background(), cfg)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
