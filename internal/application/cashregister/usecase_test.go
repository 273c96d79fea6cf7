package cashregister_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/application/cashregister"
	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/storage"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setup(t *testing.T) (*storage.Store, *cashregister.UseCase, *clock) {
	t.Helper()
	st := storage.NewMemory(zerolog.Nop())
	clk := &clock{t: time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)}
	uc := cashregister.NewUseCase(st.Repos, st.Tx, cashregister.Config{
		Location: time.UTC,
		Now:      clk.now,
	}, zerolog.Nop())
	return st, uc, clk
}

func TestGet_CajaPorDefecto(t *testing.T) {
	_, uc, _ := setup(t)
	cash, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, cash.InitialBalance.Equal(dec("1200")))
	assert.NotNil(t, cash.Expenses)
	assert.Empty(t, cash.Expenses)
}

func TestGet_SaldoInicialCeroConfigurado(t *testing.T) {
	st := storage.NewMemory(zerolog.Nop())
	zero := decimal.Zero
	uc := cashregister.NewUseCase(st.Repos, st.Tx, cashregister.Config{DefaultOpening: &zero, Location: time.UTC}, zerolog.Nop())

	cash, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, cash.InitialBalance.IsZero())
}

func TestDaily_EscenarioCierre(t *testing.T) {
	st, uc, clk := setup(t)
	ctx := context.Background()

	require.NoError(t, st.Repos.Sales.Create(ctx, &entity.Sale{ID: "s1", Total: dec("43.75"), CreatedAt: clk.t.Add(time.Hour)}))
	_, err := uc.PostExpense(ctx, dto.ExpenseRequest{Description: "Agua", Amount: dec("20.00")})
	require.NoError(t, err)

	rep, err := uc.Daily(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", rep.Date)
	assert.True(t, rep.Summary.Closing.Equal(dec("1223.75")), rep.Summary.Closing.String())
	assert.Equal(t, 1, rep.Summary.SalesCount)
}

func TestDaily_FiltraEgresosPorElMismoDia(t *testing.T) {
	st, uc, clk := setup(t)
	ctx := context.Background()

	_, err := uc.PostExpense(ctx, dto.ExpenseRequest{Description: "Ayer", Amount: dec("50")})
	require.NoError(t, err)
	require.NoError(t, st.Repos.Sales.Create(ctx, &entity.Sale{ID: "s1", Total: dec("10"), CreatedAt: clk.t}))

	clk.t = clk.t.AddDate(0, 0, 1)
	rep, err := uc.Daily(ctx, "")
	require.NoError(t, err)
	assert.True(t, rep.Summary.Expenses.IsZero())
	assert.True(t, rep.Summary.Income.IsZero())

	prev, err := uc.Daily(ctx, "2024-03-15")
	require.NoError(t, err)
	assert.True(t, prev.Summary.Closing.Equal(dec("1160")))
}

func TestPostExpense_Validaciones(t *testing.T) {
	_, uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.PostExpense(ctx, dto.ExpenseRequest{Description: "  ", Amount: dec("5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.PostExpense(ctx, dto.ExpenseRequest{Description: "Luz", Amount: dec("-5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveExpense_Idempotente(t *testing.T) {
	_, uc, _ := setup(t)
	ctx := context.Background()
	e, err := uc.PostExpense(ctx, dto.ExpenseRequest{Description: "Luz", Amount: dec("5")})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveExpense(ctx, e.ID))
	require.NoError(t, uc.RemoveExpense(ctx, e.ID))
	cash, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cash.Expenses)
}

func TestSetOpeningBalance_GuardaHistorialPorDia(t *testing.T) {
	_, uc, clk := setup(t)
	ctx := context.Background()

	_, err := uc.SetOpeningBalance(ctx, dto.OpeningBalanceRequest{Amount: dec("1000")})
	require.NoError(t, err)
	clk.t = clk.t.AddDate(0, 0, 1)
	cash, err := uc.SetOpeningBalance(ctx, dto.OpeningBalanceRequest{Amount: dec("800")})
	require.NoError(t, err)
	assert.True(t, cash.InitialBalance.Equal(dec("800")))

	prev, err := uc.Daily(ctx, "2024-03-15")
	require.NoError(t, err)
	assert.True(t, prev.Summary.Opening.Equal(dec("1000")), "la apertura del día anterior se conserva")

	periods, err := uc.Periods(ctx)
	require.NoError(t, err)
	assert.Len(t, periods, 2)
}

func TestSetOpeningBalance_Negativo(t *testing.T) {
	_, uc, _ := setup(t)
	_, err := uc.SetOpeningBalance(context.Background(), dto.OpeningBalanceRequest{Amount: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClosePeriod_SnapshotYDobleCierre(t *testing.T) {
	st, uc, clk := setup(t)
	ctx := context.Background()
	require.NoError(t, st.Repos.Sales.Create(ctx, &entity.Sale{ID: "s1", Total: dec("43.75"), CreatedAt: clk.t}))
	_, err := uc.PostExpense(ctx, dto.ExpenseRequest{Description: "Agua", Amount: dec("20")})
	require.NoError(t, err)

	p, err := uc.ClosePeriod(ctx, "")
	require.NoError(t, err)
	assert.True(t, p.Closed)
	assert.True(t, p.ClosingBalance.Equal(dec("1223.75")))
	assert.True(t, p.SalesTotal.Equal(dec("43.75")))
	assert.Equal(t, 1, p.SalesCount)

	_, err = uc.ClosePeriod(ctx, "2024-03-15")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.SetOpeningBalance(ctx, dto.OpeningBalanceRequest{Amount: dec("5")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDaily_FechaInvalida(t *testing.T) {
	_, uc, _ := setup(t)
	_, err := uc.Daily(context.Background(), "15/03/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
