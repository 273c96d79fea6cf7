package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// Summary resumen de caja de un periodo.
type Summary struct {
	Opening       decimal.Decimal `json:"openingBalance"`
	Income        decimal.Decimal `json:"income"`
	Expenses      decimal.Decimal `json:"expenses"`
	Profit        decimal.Decimal `json:"profit"`
	Closing       decimal.Decimal `json:"closingBalance"`
	SalesCount    int             `json:"salesCount"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
}

// SalesTotal suma de Sale.Total.
func SalesTotal(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	return total
}

// ExpensesTotal suma de Expense.Amount.
func ExpensesTotal(expenses []entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ClosingBalance saldo inicial + ingresos por ventas - egresos.
func ClosingBalance(opening decimal.Decimal, sales []entity.Sale, expenses []entity.Expense) decimal.Decimal {
	return opening.Add(SalesTotal(sales)).Sub(ExpensesTotal(expenses))
}

// FilterSales ventas cuyo createdAt cae en r, en el orden original.
func FilterSales(sales []entity.Sale, r Range) []entity.Sale {
	out := make([]entity.Sale, 0, len(sales))
	for _, s := range sales {
		if r.Contains(s.CreatedAt) {
			out = append(out, s)
		}
	}
	return out
}

// FilterExpenses egresos cuyo createdAt cae en r.
func FilterExpenses(expenses []entity.Expense, r Range) []entity.Expense {
	out := make([]entity.Expense, 0, len(expenses))
	for _, e := range expenses {
		if r.Contains(e.CreatedAt) {
			out = append(out, e)
		}
	}
	return out
}

// Summarize calcula el resumen de un periodo ya filtrado.
func Summarize(opening decimal.Decimal, sales []entity.Sale, expenses []entity.Expense) Summary {
	income := SalesTotal(sales)
	out := ExpensesTotal(expenses)
	s := Summary{
		Opening:       opening,
		Income:        income,
		Expenses:      out,
		Profit:        income.Sub(out),
		Closing:       opening.Add(income).Sub(out),
		SalesCount:    len(sales),
		AverageTicket: decimal.Zero,
	}
	if len(sales) > 0 {
		s.AverageTicket = income.Div(decimal.NewFromInt(int64(len(sales)))).Round(2)
	}
	return s
}
