package dto

import "github.com/shopspring/decimal"

// ClientRequest alta o edición de cliente.
type ClientRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Phone       string          `json:"phone" validate:"required,max=30"`
	Address     string          `json:"address" validate:"max=300"`
	CreditLimit decimal.Decimal `json:"creditLimit" validate:"gte=0"`
}

// PaymentRequest abono de un cliente. El rango del monto lo valida el ledger (0 < monto <= saldo).
type PaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=200"`
}

// ClientFilter búsqueda por nombre o teléfono.
type ClientFilter struct {
	Search string `query:"search"`
}

// ChargeRequest cargo manual a la cuenta del cliente (venta a crédito registrada fuera de caja).
type ChargeRequest struct {
	Amount decimal.Decimal `json:"amount"`
	SaleID string          `json:"saleId"`
}
