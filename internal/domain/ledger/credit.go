package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// PostCreditSale carga amount al saldo del cliente y agrega el asiento CREDIT_SALE.
// Si balance + amount supera el límite no modifica el cliente y devuelve *domain.CreditLimitExceededError.
func PostCreditSale(c *entity.Client, amount decimal.Decimal, saleID, entryID string, at time.Time) error {
	if !amount.IsPositive() {
		return domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	projected := c.Balance.Add(amount)
	if projected.GreaterThan(c.CreditLimit) {
		return &domain.CreditLimitExceededError{
			ClientID:  c.ID,
			Balance:   c.Balance,
			Amount:    amount,
			Projected: projected,
			Limit:     c.CreditLimit,
		}
	}
	c.Balance = projected
	c.Entries = append(c.Entries, entity.LedgerEntry{
		ID:        entryID,
		Kind:      entity.EntryCreditSale,
		Amount:    amount,
		SaleID:    saleID,
		CreatedAt: at,
	})
	c.UpdatedAt = &at
	return nil
}

// PostPayment abona amount al saldo: exige 0 < amount <= balance, si no devuelve *domain.OverpaymentError
// sin modificar el cliente. Agrega el Payment y el asiento PAYMENT.
func PostPayment(c *entity.Client, amount decimal.Decimal, description, paymentID, entryID string, at time.Time) (*entity.Payment, error) {
	if !amount.IsPositive() || amount.GreaterThan(c.Balance) {
		return nil, &domain.OverpaymentError{ClientID: c.ID, Amount: amount, Balance: c.Balance}
	}
	payment := entity.Payment{
		ID:          paymentID,
		Amount:      amount,
		Description: description,
		CreatedAt:   at,
	}
	c.Balance = c.Balance.Sub(amount)
	c.Payments = append(c.Payments, payment)
	c.Entries = append(c.Entries, entity.LedgerEntry{
		ID:          entryID,
		Kind:        entity.EntryPayment,
		Amount:      amount,
		PaymentID:   paymentID,
		Description: description,
		CreatedAt:   at,
	})
	c.UpdatedAt = &at
	return &payment, nil
}
