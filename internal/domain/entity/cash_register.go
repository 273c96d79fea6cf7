package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense egreso de caja. Se crea o se elimina, nunca se edita.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CashRegister estado de la caja diaria: saldo inicial y egresos registrados.
// Se persiste anidado en el documento de configuración (settings.cashRegister).
type CashRegister struct {
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Expenses       []Expense       `json:"expenses"`
}

// LedgerPeriod apertura y cierre de caja de un día calendario.
type LedgerPeriod struct {
	Date           string           `json:"date"` // YYYY-MM-DD
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	OpenedAt       time.Time        `json:"openedAt"`
	Closed         bool             `json:"closed"`
	SalesTotal     *decimal.Decimal `json:"salesTotal,omitempty"`
	ExpensesTotal  *decimal.Decimal `json:"expensesTotal,omitempty"`
	ClosingBalance *decimal.Decimal `json:"closingBalance,omitempty"`
	SalesCount     int              `json:"salesCount,omitempty"`
	ClosedAt       *time.Time       `json:"closedAt,omitempty"`
}
