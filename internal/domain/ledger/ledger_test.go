package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func managua(t *testing.T) *time.Location {
	t.Helper()
	return time.FixedZone("CST", -6*3600)
}

func TestClosingBalance_EscenarioCaja(t *testing.T) {
	sales := []entity.Sale{{Total: dec("43.75")}}
	expenses := []entity.Expense{{Amount: dec("20.00")}}

	got := ledger.ClosingBalance(dec("1200.00"), sales, expenses)
	assert.True(t, dec("1223.75").Equal(got), "esperado 1223.75, obtenido %s", got)
}

func TestClosingBalance_SinMovimientos(t *testing.T) {
	got := ledger.ClosingBalance(dec("500"), nil, nil)
	assert.True(t, dec("500").Equal(got))
}

func TestDay_LimitesMedianoche(t *testing.T) {
	loc := managua(t)
	r := ledger.Day(time.Date(2026, 3, 10, 15, 30, 0, 0, loc), loc)

	assert.True(t, r.Contains(time.Date(2026, 3, 10, 0, 0, 0, 0, loc)), "medianoche de hoy incluida")
	assert.True(t, r.Contains(time.Date(2026, 3, 10, 23, 59, 59, 0, loc)))
	assert.False(t, r.Contains(time.Date(2026, 3, 11, 0, 0, 0, 0, loc)), "medianoche de mañana excluida")
	assert.False(t, r.Contains(time.Date(2026, 3, 9, 23, 59, 59, 0, loc)))
	assert.Equal(t, "2026-03-10", r.Date())
}

func TestBetween_ExtremosAbiertos(t *testing.T) {
	loc := managua(t)
	r, err := ledger.Between("", "", loc)
	require.NoError(t, err)
	assert.True(t, r.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, "Inicio - Hoy", r.Label())

	r, err = ledger.Between("2026-03-01", "2026-03-31", loc)
	require.NoError(t, err)
	assert.True(t, r.Contains(time.Date(2026, 3, 31, 22, 0, 0, 0, loc)), "el día final es inclusive")
	assert.False(t, r.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, loc)))
}

func TestBetween_RangoInvertido(t *testing.T) {
	_, err := ledger.Between("2026-03-31", "2026-03-01", time.UTC)
	assert.Error(t, err)

	_, err = ledger.Between("31/03/2026", "", time.UTC)
	assert.Error(t, err)
}

func TestSummarize_FiltraVentasYEgresosPorElMismoPeriodo(t *testing.T) {
	loc := managua(t)
	day := ledger.Day(time.Date(2026, 3, 10, 12, 0, 0, 0, loc), loc)
	yesterday := time.Date(2026, 3, 9, 18, 0, 0, 0, loc)
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)

	sales := []entity.Sale{
		{Total: dec("100"), CreatedAt: yesterday},
		{Total: dec("43.75"), CreatedAt: today},
		{Total: dec("6.25"), CreatedAt: today},
	}
	expenses := []entity.Expense{
		{Amount: dec("999"), CreatedAt: yesterday},
		{Amount: dec("20"), CreatedAt: today},
	}

	s := ledger.Summarize(dec("1200"), ledger.FilterSales(sales, day), ledger.FilterExpenses(expenses, day))

	assert.Equal(t, 2, s.SalesCount)
	assert.True(t, dec("50").Equal(s.Income))
	assert.True(t, dec("20").Equal(s.Expenses))
	assert.True(t, dec("30").Equal(s.Profit))
	assert.True(t, dec("1230").Equal(s.Closing))
	assert.True(t, dec("25").Equal(s.AverageTicket))
}

func TestSummarize_ClosingCoincideConFormula(t *testing.T) {
	sales := []entity.Sale{{Total: dec("10.10")}, {Total: dec("0.20")}, {Total: dec("3.33")}}
	expenses := []entity.Expense{{Amount: dec("1.11")}, {Amount: dec("2.22")}}
	s := ledger.Summarize(dec("7"), sales, expenses)
	assert.True(t, ledger.ClosingBalance(dec("7"), sales, expenses).Equal(s.Closing))
	assert.True(t, dec("17.30").Equal(s.Closing))
}
