package kvstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/kvstore"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/memory"
)

func newRepos(t *testing.T) (*memory.Store, repository.Repos) {
	t.Helper()
	store := memory.NewStore()
	return store, kvstore.NewRepos(store, zerolog.Nop())
}

func TestCollection_ClaveAusenteDevuelveVacio(t *testing.T) {
	_, repos := newRepos(t)
	products, err := repos.Products.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCollection_DocumentoIlegibleSeTrataComoVacio(t *testing.T) {
	store, repos := newRepos(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kvstore.KeyProducts, []byte("{no es json")))

	products, err := repos.Products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepo_CrearActualizarEliminar(t *testing.T) {
	_, repos := newRepos(t)
	ctx := context.Background()
	p := &entity.Product{ID: "p1", Name: "Acetaminofén", SKU: "750100", Price: decimal.RequireFromString("12.50"), Stock: 10}
	require.NoError(t, repos.Products.Create(ctx, p))

	got, err := repos.Products.GetBySKU(ctx, "750100")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.ID)

	p.Stock = 4
	require.NoError(t, repos.Products.Update(ctx, p))
	got, err = repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stock)

	require.NoError(t, repos.Products.Delete(ctx, "p1"))
	require.NoError(t, repos.Products.Delete(ctx, "p1"), "eliminar dos veces no es error")
	got, err = repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepo_ActualizarInexistente(t *testing.T) {
	_, repos := newRepos(t)
	err := repos.Products.Update(context.Background(), &entity.Product{ID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCashRegisterRepo_PreservaOtrasClavesDeSettings(t *testing.T) {
	store, repos := newRepos(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kvstore.KeySettings, []byte(`{"theme":"dark"}`)))

	cash, err := repos.CashRegister.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, cash)

	require.NoError(t, repos.CashRegister.Save(ctx, &entity.CashRegister{InitialBalance: decimal.NewFromInt(1200)}))
	raw, err := store.Get(ctx, kvstore.KeySettings)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"theme":"dark"`)
	assert.Contains(t, string(raw), `"cashRegister"`)

	cash, err = repos.CashRegister.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cash)
	assert.True(t, cash.InitialBalance.Equal(decimal.NewFromInt(1200)))
	assert.NotNil(t, cash.Expenses)
}

func TestPeriodRepo_UpsertOrdenaPorFecha(t *testing.T) {
	_, repos := newRepos(t)
	ctx := context.Background()
	require.NoError(t, repos.Periods.Upsert(ctx, &entity.LedgerPeriod{Date: "2024-03-02"}))
	require.NoError(t, repos.Periods.Upsert(ctx, &entity.LedgerPeriod{Date: "2024-03-01"}))
	require.NoError(t, repos.Periods.Upsert(ctx, &entity.LedgerPeriod{Date: "2024-03-02", Closed: true}))

	periods, err := repos.Periods.List(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "2024-03-01", periods[0].Date)
	assert.True(t, periods[1].Closed)
}

func TestSystemRepo_ReinicioYBorrado(t *testing.T) {
	store, repos := newRepos(t)
	ctx := context.Background()
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "s1", CreatedAt: time.Now()}))

	done, err := repos.System.ResetCompleted(ctx)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, repos.System.ClearCollections(ctx))
	require.NoError(t, repos.System.MarkResetCompleted(ctx))

	done, err = repos.System.ResetCompleted(ctx)
	require.NoError(t, err)
	assert.True(t, done)
	assert.ElementsMatch(t, []string{kvstore.KeyResetComplete}, store.Keys())
}

func TestRunner_ErrorDescartaEscrituras(t *testing.T) {
	store := memory.NewStore()
	runner := kvstore.NewRunner(store, nil, zerolog.Nop())
	ctx := context.Background()
	boom := errors.New("boom")

	err := runner.Run(ctx, func(r repository.Repos) error {
		require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: "p1"}))
		got, err := r.Products.GetByID(ctx, "p1")
		require.NoError(t, err)
		require.NotNil(t, got, "la escritura pendiente es visible dentro de la ejecución")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.Keys())
}

func TestRunner_ExitoAplicaEscrituras(t *testing.T) {
	store := memory.NewStore()
	runner := kvstore.NewRunner(store, nil, zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kvstore.KeyClients, []byte(`[]`)))

	err := runner.Run(ctx, func(r repository.Repos) error {
		if err := r.Products.Create(ctx, &entity.Product{ID: "p1"}); err != nil {
			return err
		}
		return r.System.ClearCollections(ctx)
	})
	require.NoError(t, err)
	assert.Empty(t, store.Keys(), "el borrado posterior anula la escritura pendiente")

	err = runner.Run(ctx, func(r repository.Repos) error {
		return r.Sales.Create(ctx, &entity.Sale{ID: "s1"})
	})
	require.NoError(t, err)
	sales, err := kvstore.NewSaleRepository(store, zerolog.Nop()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}
