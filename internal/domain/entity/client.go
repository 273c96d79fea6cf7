package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento en la cuenta corriente del cliente.
const (
	EntryCreditSale = "CREDIT_SALE"
	EntryPayment    = "PAYMENT"
)

// Payment abono del cliente a su saldo.
type Payment struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// LedgerEntry asiento de la cuenta corriente: venta a crédito (debe) o abono (haber).
type LedgerEntry struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	SaleID      string          `json:"saleId,omitempty"`
	PaymentID   string          `json:"paymentId,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Client cliente con cuenta de crédito. Balance es lo adeudado.
type Client struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	Balance     decimal.Decimal `json:"balance"`
	Payments    []Payment       `json:"payments"`
	Entries     []LedgerEntry   `json:"entries,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// AvailableCredit crédito disponible (límite - saldo).
func (c Client) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.Balance)
}

// LedgerBalance saldo recalculado desde los asientos.
func (c Client) LedgerBalance() decimal.Decimal {
	bal := decimal.Zero
	for _, e := range c.Entries {
		switch e.Kind {
		case EntryCreditSale:
			bal = bal.Add(e.Amount)
		case EntryPayment:
			bal = bal.Sub(e.Amount)
		}
	}
	return bal
}
