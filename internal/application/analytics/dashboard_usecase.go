// Package analytics contiene los reportes de la farmacia: dashboard, reporte de ventas
// por rango de fechas e inventario, y su exportación a PDF/Excel.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/ledger"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// DashboardConfig parámetros del dashboard.
type DashboardConfig struct {
	ExpiryWindowDays int
	Location         *time.Location
	Now              func() time.Time
}

// DashboardUseCase genera el resumen del día y del mes en curso.
type DashboardUseCase struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	cfg      DashboardConfig
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(products repository.ProductRepository, sales repository.SaleRepository, cfg DashboardConfig) *DashboardUseCase {
	if cfg.ExpiryWindowDays <= 0 {
		cfg.ExpiryWindowDays = 30
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &DashboardUseCase{products: products, sales: sales, cfg: cfg}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos lecturas en paralelo:
//  1. productos → totales de inventario, stock bajo, por vencer
//  2. ventas    → hoy, mes en curso, mes anterior, top productos
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.cfg.Now().In(uc.cfg.Location)

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	today := ledger.Day(now, uc.cfg.Location)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.cfg.Location)
	month := ledger.Range{Start: monthStart, End: monthStart.AddDate(0, 1, 0)}
	prevMonth := ledger.Range{Start: monthStart.AddDate(0, -1, 0), End: monthStart}

	type productsResult struct {
		items []entity.Product
		err   error
	}
	type salesResult struct {
		items []entity.Sale
		err   error
	}
	productsCh := make(chan productsResult, 1)
	salesCh := make(chan salesResult, 1)

	go func() {
		items, err := uc.products.List(ctx)
		productsCh <- productsResult{items, err}
	}()
	go func() {
		items, err := uc.sales.List(ctx)
		salesCh <- salesResult{items, err}
	}()

	products := <-productsCh
	sales := <-salesCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}

	out := &dto.DashboardSummaryDTO{
		TotalProducts:  len(products.items),
		InventoryValue: decimal.Zero,
		ExpiryWindow:   uc.cfg.ExpiryWindowDays,
		DateLabel:      monthLabel(now),
	}
	for _, p := range products.items {
		out.InventoryValue = out.InventoryValue.Add(p.StockValue())
		if p.IsLowStock() {
			out.LowStockCount++
		}
		if p.ExpiresWithin(now, uc.cfg.ExpiryWindowDays) {
			out.ExpiringCount++
		}
	}

	todaySales := ledger.FilterSales(sales.items, today)
	monthSales := ledger.FilterSales(sales.items, month)
	out.TodaySales = ledger.SalesTotal(todaySales).Round(2)
	out.TodaySalesCount = len(todaySales)
	out.MonthlySales = ledger.SalesTotal(monthSales).Round(2)
	out.PrevMonthSales = ledger.SalesTotal(ledger.FilterSales(sales.items, prevMonth)).Round(2)
	out.MonthTrendPct = trendPct(out.MonthlySales, out.PrevMonthSales)
	out.TopProducts = topProducts(monthSales, dashboardTopProducts)
	return out, nil
}

// trendPct variación porcentual actual vs anterior; nil si anterior es cero.
func trendPct(current, previous decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}
	pct := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1)
	return &pct
}

// topProducts agrupa por productId (o nombre en ventas antiguas) y ordena por unidades.
func topProducts(sales []entity.Sale, limit int) []dto.TopProductDTO {
	index := map[string]int{}
	out := []dto.TopProductDTO{}
	for _, s := range sales {
		for _, it := range s.Items {
			key := it.ProductID
			if key == "" {
				key = "name:" + it.Name
			}
			i, ok := index[key]
			if !ok {
				i = len(out)
				index[key] = i
				out = append(out, dto.TopProductDTO{ProductID: it.ProductID, Name: it.Name, Revenue: decimal.Zero})
			}
			out[i].Units += it.Quantity
			out[i].Revenue = out[i].Revenue.Add(it.Subtotal())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
