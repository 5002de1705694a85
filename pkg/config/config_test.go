package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_URL", "postgres://localhost/trello")

	cfg, err := parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "trello", cfg.JWTIssuer)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.ForbiddenAs403)
}

func TestParseRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", DriverSQLite)

	_, err := parse()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestParsePostgresRequiresURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := parse()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestParseSQLite(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("FORBIDDEN_AS_403", "true")

	cfg, err := parse()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.True(t, cfg.ForbiddenAs403)
}

func TestParseUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := parse()
	assert.ErrorContains(t, err, "mysql")
}
