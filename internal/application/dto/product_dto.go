package dto

import "github.com/shopspring/decimal"

// ProductRequest entrada para crear o editar un producto (el formulario envía todos los campos).
type ProductRequest struct {
	Name       string          `json:"name" validate:"required,max=200"`
	SKU        string          `json:"sku" validate:"required,max=100"`
	Category   string          `json:"category" validate:"required,max=100"`
	Price      decimal.Decimal `json:"price" validate:"gte=0"`
	Stock      int             `json:"stock" validate:"gte=0"`
	MinStock   int             `json:"minStock" validate:"gte=0"`
	ExpiryDate string          `json:"expiryDate" validate:"required,datetime=2006-01-02"`
	Supplier   string          `json:"supplier" validate:"required,max=200"`
}

// ProductFilter filtros del listado de inventario.
type ProductFilter struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	LowStock bool   `query:"lowStock"`
}
