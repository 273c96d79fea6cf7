package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreFile, cfg.Store.Driver)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.Cash.DefaultOpening.Equal(decimal.RequireFromString("1200")))
	assert.Equal(t, "NIO", cfg.Cash.Currency)
	assert.Equal(t, 30, cfg.App.ExpiryWindowDays)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CASH_DEFAULT_OPENING", "500.50")
	t.Setenv("REDIS_LOCK_TTL_SECONDS", "3")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreRedis, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "500.5", cfg.Cash.DefaultOpening.String())
	assert.Equal(t, 3*time.Second, cfg.Redis.LockTTL)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_DriverSQLite(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "sqlite")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreSQLite, cfg.Store.Driver)
}

func TestLoad_SaldoInicialCero(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CASH_DEFAULT_OPENING", "0")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Cash.DefaultOpening.IsZero())
}

func TestLoad_SaldoInicialInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CASH_DEFAULT_OPENING", "mil")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss/w", DBName: "farmacia", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%2Fw@db:5432/farmacia?sslmode=disable", c.ConnectionString())
}
