package dto

import "github.com/shopspring/decimal"

// ── Dashboard ─────────────────────────────────────────────────────────────────

// TopProductDTO producto más vendido del mes.
type TopProductDTO struct {
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO resumen de la pantalla principal.
type DashboardSummaryDTO struct {
	TotalProducts   int              `json:"totalProducts"`
	InventoryValue  decimal.Decimal  `json:"inventoryValue"` // suma de stock * precio
	TodaySales      decimal.Decimal  `json:"todaySales"`
	TodaySalesCount int              `json:"todaySalesCount"`
	MonthlySales    decimal.Decimal  `json:"monthlySales"`
	PrevMonthSales  decimal.Decimal  `json:"prevMonthSales"`
	MonthTrendPct   *decimal.Decimal `json:"monthTrendPct"` // nil si el mes anterior no tuvo ventas
	LowStockCount   int              `json:"lowStockCount"`
	ExpiringCount   int              `json:"expiringCount"`
	ExpiryWindow    int              `json:"expiryWindowDays"`
	TopProducts     []TopProductDTO  `json:"topProducts"`
	DateLabel       string           `json:"dateLabel"` // ej: "Mayo 2024"
}

// ExportRequest formato de exportación (?format=pdf|xlsx).
type ExportRequest struct {
	Format string `query:"format" validate:"omitempty,oneof=pdf xlsx"`
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}
