package bootstrap_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/bootstrap"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/storage"
	"github.com/jhoicas/farmacia-pos/pkg/config"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App:   config.AppConfig{Name: "farmacia-pos", ExpiryWindowDays: 30},
		JWT:   config.JWTConfig{Secret: "test", Expiration: 60, Issuer: "test"},
		Cash:  config.CashConfig{DefaultOpening: decimal.NewFromInt(1200), Currency: "NIO", Timezone: "UTC"},
		Admin: config.AdminConfig{Username: "admin", Password: "admin123", Name: "Administrador"},
		Store: config.StoreConfig{Driver: config.StoreFile, DataDir: t.TempDir()},
	}
}

func TestStart_PrimerArranqueYReinicioConservaDatos(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first, res, err := bootstrap.Start(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	assert.True(t, res.Reset)
	assert.True(t, res.AdminCreated)
	_, err = first.Products.Create(ctx, dto.ProductRequest{
		Name: "Loratadina 10mg", SKU: "LOR10", Category: "Antialérgicos", Price: decimal.NewFromInt(3),
		Stock: 12, MinStock: 4, ExpiryDate: "2099-06-30", Supplier: "Distribuidora Central",
	})
	require.NoError(t, err)
	first.Close()

	second, res, err := bootstrap.Start(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer second.Close()
	assert.False(t, res.Reset)
	assert.False(t, res.AdminCreated)

	products, err := second.Products.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "LOR10", products[0].SKU)
}

func TestStart_DriverDesconocido(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Driver = "mongo"
	_, _, err := bootstrap.Start(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

// CASH_DEFAULT_OPENING=0 es un saldo inicial válido, no "sin configurar".
func TestBuild_SaldoInicialCero(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cash.DefaultOpening = decimal.Zero
	c := bootstrap.Build(storage.NewMemory(zerolog.Nop()), cfg, logger.Nop())
	ctx := context.Background()

	cash, err := c.Cash.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cash.InitialBalance.IsZero())

	doc, err := c.Backup.Export(ctx)
	require.NoError(t, err)
	assert.True(t, doc.Data.Settings.InitialBalance.IsZero())

	report, err := c.Reports.SalesReport(ctx, dto.DateRangeFilter{})
	require.NoError(t, err)
	assert.True(t, report.Summary.Opening.IsZero())
}
