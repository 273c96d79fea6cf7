package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryDateLayout formato de la fecha de vencimiento (input type=date del formulario).
const ExpiryDateLayout = "2006-01-02"

// Product representa un producto del inventario de la farmacia.
// SKU no se valida como único; Stock nunca queda negativo (las ventas lo recortan a 0).
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	MinStock   int             `json:"minStock"`
	ExpiryDate string          `json:"expiryDate"`
	Supplier   string          `json:"supplier"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  *time.Time      `json:"updatedAt,omitempty"`
}

// IsLowStock indica stock bajo (stock <= stock mínimo).
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// DecrementStock descuenta qty del stock con piso en cero. Devuelve las unidades que faltaron.
func (p *Product) DecrementStock(qty int) (shortfall int) {
	if qty <= 0 {
		return 0
	}
	if qty > p.Stock {
		shortfall = qty - p.Stock
		p.Stock = 0
		return shortfall
	}
	p.Stock -= qty
	return 0
}

// Expiry devuelve la fecha de vencimiento interpretada en loc.
func (p Product) Expiry(loc *time.Location) (time.Time, bool) {
	if p.ExpiryDate == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(ExpiryDateLayout, p.ExpiryDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ExpiresWithin indica si el producto vence entre hoy y hoy+days (ambos inclusive).
// Los productos ya vencidos no entran en la ventana.
func (p Product) ExpiresWithin(now time.Time, days int) bool {
	exp, ok := p.Expiry(now.Location())
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	limit := today.AddDate(0, 0, days)
	return !exp.Before(today) && !exp.After(limit)
}

// StockValue valor del inventario del producto (stock * precio).
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}
