package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/application/cashregister"
	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/ledger"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/pkg/collation"
)

// SalesReport reporte de ventas de un rango. Los egresos se filtran por el mismo rango
// y el saldo final parte del saldo inicial actual de la caja.
type SalesReport struct {
	Label       string           `json:"label"` // "01/05/2024 - 31/05/2024", "Inicio - Hoy"
	From        string           `json:"from,omitempty"`
	To          string           `json:"to,omitempty"`
	Summary     ledger.Summary   `json:"summary"`
	Sales       []entity.Sale    `json:"sales"`
	Expenses    []entity.Expense `json:"expenses"`
	Currency    string           `json:"currency"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// InventoryReport inventario completo ordenado por nombre.
type InventoryReport struct {
	Products      []entity.Product `json:"products"`
	TotalValue    decimal.Decimal  `json:"totalValue"`
	LowStockCount int              `json:"lowStockCount"`
	Currency      string           `json:"currency"`
	GeneratedAt   time.Time        `json:"generatedAt"`
}

// ReportConfig parámetros de reportes.
type ReportConfig struct {
	DefaultOpening *decimal.Decimal // nil usa cashregister.DefaultOpening
	Currency       string
	Location       *time.Location
	Now            func() time.Time
}

// ReportUseCase reportes de ventas e inventario y su exportación.
type ReportUseCase struct {
	repos     repository.Repos
	renderers map[string]ReportRenderer
	cfg       ReportConfig
}

// NewReportUseCase construye el caso de uso. renderers indexa por formato ("pdf", "xlsx").
func NewReportUseCase(repos repository.Repos, renderers map[string]ReportRenderer, cfg ReportConfig) *ReportUseCase {
	if cfg.DefaultOpening == nil {
		opening := cashregister.DefaultOpening
		cfg.DefaultOpening = &opening
	}
	if cfg.Currency == "" {
		cfg.Currency = "NIO"
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if renderers == nil {
		renderers = map[string]ReportRenderer{}
	}
	return &ReportUseCase{repos: repos, renderers: renderers, cfg: cfg}
}

// SalesReport ventas, egresos y resumen del rango [from, to] (días inclusive; vacío = abierto).
func (uc *ReportUseCase) SalesReport(ctx context.Context, f dto.DateRangeFilter) (*SalesReport, error) {
	if err := dto.Validate(f); err != nil {
		return nil, err
	}
	rng, err := ledger.Between(f.From, f.To, uc.cfg.Location)
	if err != nil {
		return nil, domain.NewValidationError("from", err.Error())
	}
	allSales, err := uc.repos.Sales.List(ctx)
	if err != nil {
		return nil, err
	}
	cash, err := cashregister.Load(ctx, uc.repos.CashRegister, *uc.cfg.DefaultOpening)
	if err != nil {
		return nil, err
	}
	sales := ledger.FilterSales(allSales, rng)
	expenses := ledger.FilterExpenses(cash.Expenses, rng)
	return &SalesReport{
		Label:       rng.Label(),
		From:        f.From,
		To:          f.To,
		Summary:     ledger.Summarize(cash.InitialBalance, sales, expenses),
		Sales:       sales,
		Expenses:    expenses,
		Currency:    uc.cfg.Currency,
		GeneratedAt: uc.cfg.Now().In(uc.cfg.Location),
	}, nil
}

// InventoryReport inventario con valor total y conteo de stock bajo.
func (uc *ReportUseCase) InventoryReport(ctx context.Context) (*InventoryReport, error) {
	products, err := uc.repos.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	collation.SortBy(products, func(p entity.Product) string { return p.Name })
	out := &InventoryReport{
		Products:    products,
		TotalValue:  decimal.Zero,
		Currency:    uc.cfg.Currency,
		GeneratedAt: uc.cfg.Now().In(uc.cfg.Location),
	}
	for _, p := range products {
		out.TotalValue = out.TotalValue.Add(p.StockValue())
		if p.IsLowStock() {
			out.LowStockCount++
		}
	}
	return out, nil
}

// ExportInventory genera inventario_AAAA-MM-DD.<formato>.
func (uc *ReportUseCase) ExportInventory(ctx context.Context, format string) (*ExportFile, error) {
	renderer, format, err := uc.renderer(format)
	if err != nil {
		return nil, err
	}
	report, err := uc.InventoryReport(ctx)
	if err != nil {
		return nil, err
	}
	data, err := renderer.RenderInventory(ctx, report)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Name:        "inventario_" + report.GeneratedAt.Format(ledger.DateLayout) + "." + format,
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

// ExportSales genera ventas_AAAA-MM-DD.<formato> con las ventas del rango.
func (uc *ReportUseCase) ExportSales(ctx context.Context, f dto.DateRangeFilter, format string) (*ExportFile, error) {
	renderer, format, err := uc.renderer(format)
	if err != nil {
		return nil, err
	}
	report, err := uc.SalesReport(ctx, f)
	if err != nil {
		return nil, err
	}
	data, err := renderer.RenderSales(ctx, report)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Name:        "ventas_" + report.GeneratedAt.Format(ledger.DateLayout) + "." + format,
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

func (uc *ReportUseCase) renderer(format string) (ReportRenderer, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatPDF
	}
	r, ok := uc.renderers[format]
	if !ok {
		return nil, "", domain.NewValidationError("format", "formato no soportado: "+format)
	}
	return r, format, nil
}
