package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pago de una venta.
const (
	PaymentCash   = "contado"
	PaymentCredit = "credito"
)

// SaleItem línea de venta. Name y Price son una copia congelada del catálogo al momento de la venta;
// ProductID referencia el producto para descontar stock aunque luego se renombre.
type SaleItem struct {
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal precio * cantidad.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale venta registrada en caja. Inmutable una vez creada.
type Sale struct {
	ID            string          `json:"id"`
	Items         []SaleItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	ClientID      string          `json:"clientId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ItemsTotal suma de subtotales de las líneas.
func (s Sale) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Units cantidad total de unidades vendidas.
func (s Sale) Units() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// IsCredit indica una venta a crédito de cliente.
func (s Sale) IsCredit() bool {
	return s.PaymentMethod == PaymentCredit
}
