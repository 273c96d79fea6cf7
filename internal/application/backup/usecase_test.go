package backup_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/application/backup"
	"github.com/jhoicas/farmacia-pos/internal/application/system"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/storage"
)

var fixedNow = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*storage.Store, *backup.UseCase) {
	t.Helper()
	st := storage.NewMemory(zerolog.Nop())
	uc := backup.NewUseCase(st.Repos, st.Tx, nil, func() time.Time { return fixedNow }, zerolog.Nop())
	return st, uc
}

func seed(t *testing.T, st *storage.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.Repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Paracetamol", SKU: "PAR-500", Price: dec("12.50"), Stock: 40, MinStock: 10, ExpiryDate: "2025-01-01"}))
	require.NoError(t, st.Repos.Sales.Create(ctx, &entity.Sale{ID: "s1", Items: []entity.SaleItem{{ProductID: "p1", Name: "Paracetamol", Quantity: 2, Price: dec("12.50")}}, Total: dec("25.00"), CreatedAt: fixedNow}))
	require.NoError(t, st.Repos.CashRegister.Save(ctx, &entity.CashRegister{InitialBalance: dec("1500"), Expenses: []entity.Expense{{ID: "e1", Description: "Agua", Amount: dec("20"), CreatedAt: fixedNow}}}))
	require.NoError(t, st.Repos.Clients.Create(ctx, &entity.Client{ID: "c1", Name: "Ana", Phone: "8888 1234", CreditLimit: dec("500"), Balance: dec("100"), Payments: []entity.Payment{}}))
	require.NoError(t, st.Repos.Users.Create(ctx, &entity.User{ID: "u1", Username: "admin", PasswordHash: "$2a$10$hash", Name: "Administrador", Role: entity.RoleAdmin}))
	closing, salesTotal, expensesTotal := dec("1505"), dec("25"), dec("20")
	closedAt := fixedNow.Add(2 * time.Hour)
	require.NoError(t, st.Repos.Periods.Upsert(ctx, &entity.LedgerPeriod{
		Date: "2024-05-10", OpeningBalance: dec("1500"), OpenedAt: fixedNow, Closed: true,
		SalesTotal: &salesTotal, ExpensesTotal: &expensesTotal, ClosingBalance: &closing, SalesCount: 1, ClosedAt: &closedAt,
	}))
}

func TestExport_FormatoDelDocumento(t *testing.T) {
	st, uc := setup(t)
	seed(t, st)

	raw, err := uc.ExportJSON(context.Background())
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, "1.0", generic["version"])
	assert.Equal(t, "2024-05-10T15:00:00Z", generic["timestamp"])
	data := generic["data"].(map[string]any)
	for _, k := range []string{"products", "sales", "settings", "clients", "users"} {
		assert.Contains(t, data, k)
	}
	settings := data["settings"].(map[string]any)
	assert.Contains(t, settings, "initialBalance")
	assert.Contains(t, settings, "expenses")
}

func TestExport_CajaPredeterminada(t *testing.T) {
	_, uc := setup(t)
	doc, err := uc.Export(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.Data.Settings)
	assert.True(t, doc.Data.Settings.InitialBalance.Equal(dec("1200")))
	assert.Empty(t, doc.Data.Products)
}

func TestExport_CajaConSaldoInicialCero(t *testing.T) {
	st := storage.NewMemory(zerolog.Nop())
	zero := decimal.Zero
	uc := backup.NewUseCase(st.Repos, st.Tx, &zero, func() time.Time { return fixedNow }, zerolog.Nop())

	doc, err := uc.Export(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.Data.Settings)
	assert.True(t, doc.Data.Settings.InitialBalance.IsZero())
}

func TestImport_IdaYVuelta(t *testing.T) {
	prev := decimal.MarshalJSONWithoutQuotes
	decimal.MarshalJSONWithoutQuotes = true
	t.Cleanup(func() { decimal.MarshalJSONWithoutQuotes = prev })

	ctx := context.Background()
	src, srcUC := setup(t)
	seed(t, src)
	raw, err := srcUC.ExportJSON(ctx)
	require.NoError(t, err)

	dst, dstUC := setup(t)
	res, err := dstUC.Import(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"products": 1, "sales": 1, "settings": 1, "clients": 1, "users": 1, "periods": 1}, res.Restored)

	orig, err := srcUC.Export(ctx)
	require.NoError(t, err)
	again, err := dstUC.Export(ctx)
	require.NoError(t, err)

	require.Equal(t, orig.Data.Products, again.Data.Products)
	require.Equal(t, orig.Data.Sales, again.Data.Sales)
	require.Equal(t, orig.Data.Settings, again.Data.Settings)
	require.Equal(t, orig.Data.Clients, again.Data.Clients)
	require.Equal(t, orig.Data.Users, again.Data.Users)
	require.Equal(t, orig.Data.Periods, again.Data.Periods)

	require.Len(t, again.Data.Periods, 1)
	assert.True(t, again.Data.Periods[0].ClosingBalance.Equal(dec("1505")))
	assert.True(t, again.Data.Settings.InitialBalance.Equal(dec("1500")))

	u, err := dst.Repos.Users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
}

func TestExport_ColeccionesVaciasComoListas(t *testing.T) {
	_, uc := setup(t)
	raw, err := uc.ExportJSON(context.Background())
	require.NoError(t, err)

	var generic struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &generic))
	for _, k := range []string{"products", "sales", "clients", "users", "periods"} {
		require.Contains(t, generic.Data, k)
		assert.JSONEq(t, `[]`, string(generic.Data[k]), k)
	}
}

// Un respaldo sin periodos cerrados deja el destino sin periodos, no conserva los viejos.
func TestImport_PeriodosVaciosReemplazanLosCerrados(t *testing.T) {
	ctx := context.Background()
	_, emptyUC := setup(t)
	raw, err := emptyUC.ExportJSON(ctx)
	require.NoError(t, err)

	dst, dstUC := setup(t)
	seed(t, dst)
	before, err := dst.Repos.Periods.List(ctx)
	require.NoError(t, err)
	require.Len(t, before, 1)

	res, err := dstUC.Import(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Restored["periods"])
	assert.Contains(t, res.Restored, "periods")

	after, err := dst.Repos.Periods.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, after)
	period, err := dst.Repos.Periods.GetByDate(ctx, "2024-05-10")
	require.NoError(t, err)
	assert.Nil(t, period)
}

// Importar deja la marca de reinicio: el arranque siguiente no borra lo restaurado.
func TestImport_MarcaReinicioYSobreviveAlArranque(t *testing.T) {
	ctx := context.Background()
	src, srcUC := setup(t)
	seed(t, src)
	raw, err := srcUC.ExportJSON(ctx)
	require.NoError(t, err)

	dst, dstUC := setup(t)
	_, err = dstUC.Import(ctx, raw)
	require.NoError(t, err)

	done, err := dst.Repos.System.ResetCompleted(ctx)
	require.NoError(t, err)
	assert.True(t, done)

	sys := system.NewUseCase(dst.Tx, nil, zerolog.Nop())
	started, err := sys.InitializeApp(ctx)
	require.NoError(t, err)
	assert.False(t, started.Reset)

	products, err := dst.Repos.Products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestImport_FormatoInvalidoNoModifica(t *testing.T) {
	cases := map[string]string{
		"no es json":         "hola",
		"sin data":           `{"version":"1.0"}`,
		"productos no lista": `{"data":{"products":{"id":"x"}}}`,
		"precio invalido":    `{"data":{"products":[{"id":"x","price":"abc"}]}}`,
		"settings invalido":  `{"data":{"settings":[1,2]}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			st, uc := setup(t)
			seed(t, st)

			_, err := uc.Import(context.Background(), []byte(raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidBackupFormat)

			products, err := st.Repos.Products.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, products, 1)
		})
	}
}

func TestImport_ColeccionAusenteQuedaIgual(t *testing.T) {
	st, uc := setup(t)
	seed(t, st)

	_, err := uc.Import(context.Background(), []byte(`{"version":"1.0","data":{"products":[]}}`))
	require.NoError(t, err)

	products, err := st.Repos.Products.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	clients, err := st.Repos.Clients.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestImport_SettingsAnidadoEnCashRegister(t *testing.T) {
	st, uc := setup(t)
	raw := `{"version":"1.0","data":{"settings":{"cashRegister":{"initialBalance":900,"expenses":[]}}}}`

	_, err := uc.Import(context.Background(), []byte(raw))
	require.NoError(t, err)

	cash, err := st.Repos.CashRegister.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cash)
	assert.True(t, cash.InitialBalance.Equal(dec("900")))
}
