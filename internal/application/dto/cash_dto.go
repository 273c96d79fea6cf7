package dto

import "github.com/shopspring/decimal"

// OpeningBalanceRequest saldo inicial de caja.
type OpeningBalanceRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
}

// ExpenseRequest egreso de caja.
type ExpenseRequest struct {
	Description string          `json:"description" validate:"required,max=200"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
}
