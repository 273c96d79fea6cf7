package dto

import "github.com/shopspring/decimal"

// SaleItemRequest línea del carrito.
type SaleItemRequest struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
}

// CreateSaleRequest venta desde caja. Total cero = se calcula de las líneas.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Total         decimal.Decimal   `json:"total" validate:"gte=0"`
	PaymentMethod string            `json:"paymentMethod" validate:"omitempty,oneof=contado credito"`
	ClientID      string            `json:"clientId" validate:"required_if=PaymentMethod credito"`
}

// DateRangeFilter rango de fechas inclusivo (AAAA-MM-DD); vacío = abierto.
type DateRangeFilter struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}
