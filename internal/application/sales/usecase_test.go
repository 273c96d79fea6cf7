package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/storage"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var now = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*storage.Store, *sales.UseCase) {
	t.Helper()
	st := storage.NewMemory(zerolog.Nop())
	uc := sales.NewUseCase(st.Repos.Sales, st.Tx, sales.Config{
		Location: time.UTC,
		Now:      func() time.Time { return now },
	}, zerolog.Nop())
	return st, uc
}

func seedProduct(t *testing.T, st *storage.Store, id, name string, stock, minStock int) {
	t.Helper()
	require.NoError(t, st.Repos.Products.Create(context.Background(), &entity.Product{
		ID: id, Name: name, Price: dec("10"), Stock: stock, MinStock: minStock,
	}))
}

func TestRecordSale_DescuentaStockYSigueBajo(t *testing.T) {
	st, uc := setup(t)
	ctx := context.Background()
	seedProduct(t, st, "p1", "Amoxicilina 500mg", 5, 10)

	res, err := uc.RecordSale(ctx, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Name: "Amoxicilina 500mg", Quantity: 3, Price: dec("10")}},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.True(t, res.Sale.Total.Equal(dec("30")), "total calculado de las líneas")
	assert.Equal(t, entity.PaymentCash, res.Sale.PaymentMethod)

	p, err := st.Repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
	assert.True(t, p.IsLowStock())
}

func TestRecordSale_StockNuncaNegativo(t *testing.T) {
	st, uc := setup(t)
	ctx := context.Background()
	seedProduct(t, st, "p1", "Loratadina", 2, 0)

	res, err := uc.RecordSale(ctx, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Name: "Loratadina", Quantity: 5, Price: dec("4")}},
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)

	p, err := st.Repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestRecordSale_ProductoRenombradoSeEncuentraPorID(t *testing.T) {
	st, uc := setup(t)
	ctx := context.Background()
	seedProduct(t, st, "p1", "Ibuprofeno 400mg", 10, 0)

	_, err := uc.RecordSale(ctx, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Name: "Ibuprofeno", Quantity: 1, Price: dec("3")}},
	})
	require.NoError(t, err)
	p, err := st.Repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 9, p.Stock)
}

func TestRecordSale_LineaSinIDUsaNombre(t *testing.T) {
	st, uc := setup(t)
	ctx := context.Background()
	seedProduct(t, st, "p1", "Ibuprofeno", 10, 0)

	_, err := uc.RecordSale(ctx, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{Name: "Ibuprofeno", Quantity: 4, Price: dec("3")}},
	})
	require.NoError(t, err)
	p, err := st.Repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 6, p.Stock)
}

func TestRecordSale_ProductoInexistenteGeneraAviso(t *testing.T) {
	st, uc := setup(t)
	ctx := context.Background()

	res, err := uc.RecordSale(ctx, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{Name: "Producto borrado", Quantity: 1, Price: dec("43.75")}},
		Total: dec("43.75"),
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Producto borrado")

	all, err := st.Repos.Sales.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "la venta se registra aunque no haya producto")
}

func TestRecordSale_TotalNoCoincide(t *testing.T) {
	st, uc := setup(t)
	_, err := uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{Name: "X", Quantity: 2, Price: dec("10")}},
		Total: dec("25"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	all, _ := st.Repos.Sales.List(context.Background())
	assert.Empty(t, all)
}

func TestRecordSale_CarritoVacio(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.RecordSale(context.Background(), dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_CreditoCargaAlCliente(t *testing.T) {
	st, uc := setup(t)
	ctx := context.Background()
	seedProduct(t, st, "p1", "Insulina", 10, 1)
	require.NoError(t, st.Repos.Clients.Create(ctx, &entity.Client{ID: "c1", Name: "María", CreditLimit: dec("5000")}))

	res, err := uc.RecordSale(ctx, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Name: "Insulina", Quantity: 2, Price: dec("1000")}},
		PaymentMethod: entity.PaymentCredit,
		ClientID:      "c1",
	})
	require.NoError(t, err)

	c, err := st.Repos.Clients.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, c.Balance.Equal(dec("2000")))
	require.Len(t, c.Entries, 1)
	assert.Equal(t, res.Sale.ID, c.Entries[0].SaleID)
}

func TestRecordSale_CreditoRechazadoNoDejaRastro(t *testing.T) {
	st, uc := setup(t)
	ctx := context.Background()
	seedProduct(t, st, "p1", "Insulina", 10, 1)
	require.NoError(t, st.Repos.Clients.Create(ctx, &entity.Client{ID: "c1", Name: "María", CreditLimit: dec("5000"), Balance: dec("2000")}))

	_, err := uc.RecordSale(ctx, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Name: "Insulina", Quantity: 1, Price: dec("3500")}},
		PaymentMethod: entity.PaymentCredit,
		ClientID:      "c1",
	})
	assert.ErrorIs(t, err, domain.ErrCreditLimitExceeded)

	c, _ := st.Repos.Clients.GetByID(ctx, "c1")
	assert.True(t, c.Balance.Equal(dec("2000")))
	p, _ := st.Repos.Products.GetByID(ctx, "p1")
	assert.Equal(t, 10, p.Stock)
	all, _ := st.Repos.Sales.List(ctx)
	assert.Empty(t, all)
}

func TestRecordSale_CreditoClienteInexistente(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{Name: "X", Quantity: 1, Price: dec("1")}},
		PaymentMethod: entity.PaymentCredit,
		ClientID:      "nope",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorDia(t *testing.T) {
	st, uc := setup(t)
	ctx := context.Background()
	require.NoError(t, st.Repos.Sales.Create(ctx, &entity.Sale{ID: "ayer", CreatedAt: now.AddDate(0, 0, -1)}))
	require.NoError(t, st.Repos.Sales.Create(ctx, &entity.Sale{ID: "hoy", CreatedAt: now}))

	got, err := uc.List(ctx, dto.DateRangeFilter{From: "2024-03-15", To: "2024-03-15"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hoy", got[0].ID)

	all, err := uc.List(ctx, dto.DateRangeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
