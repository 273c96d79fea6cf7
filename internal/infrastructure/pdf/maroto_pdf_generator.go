// Package pdf genera los reportes imprimibles de la farmacia (inventario y ventas).
//
// Layout de la página A4 (ambos reportes):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título              │  Fecha / Período             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TARJETAS: totales del reporte                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una fila por producto o venta                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: totales                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/farmacia-pos/internal/application/analytics"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/pkg/currency"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 116, Blue: 139}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDanger  = &props.Color{Red: 220, Green: 38, Blue: 38}
	colorSuccess = &props.Color{Red: 22, Green: 163, Blue: 74}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.ReportRenderer = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.ReportRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador. author aparece en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// ContentType tipo MIME de la salida.
func (g *MarotoPDFGenerator) ContentType() string { return "application/pdf" }

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		Build()
	return maroto.New(cfg)
}

// RenderInventory genera el PDF de inventario y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderInventory(_ context.Context, report *analytics.InventoryReport) ([]byte, error) {
	m := g.newDocument("Inventario de Farmacia")
	money := currency.Formatter{Code: report.Currency}

	m.AddRows(headerRow("Inventario de Farmacia", "Generado el: "+longDate(report.GeneratedAt)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(statsRow(
		stat{"Total Productos", strconv.Itoa(len(report.Products))},
		stat{"Valor Total", money.Format(report.TotalValue)},
		stat{"Stock Bajo", strconv.Itoa(report.LowStockCount)},
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		column{"SKU", 1, align.Left},
		column{"Producto", 3, align.Left},
		column{"Categoría", 2, align.Left},
		column{"Stock", 1, align.Center},
		column{"Precio", 1, align.Right},
		column{"Valor Total", 1, align.Right},
		column{"Vencimiento", 1, align.Center},
		column{"Proveedor", 2, align.Left},
	))
	for _, p := range report.Products {
		m.AddRows(inventoryRow(p, money))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow("Valor Total del Inventario: " + money.Format(report.TotalValue)))
	return generate(m)
}

// RenderSales genera el PDF del reporte de ventas.
func (g *MarotoPDFGenerator) RenderSales(_ context.Context, report *analytics.SalesReport) ([]byte, error) {
	m := g.newDocument("Reporte de Ventas")
	money := currency.Formatter{Code: report.Currency}
	loc := report.GeneratedAt.Location()
	s := report.Summary

	m.AddRows(headerRow("Reporte de Ventas", "Período: "+report.Label))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(statsRow(
		stat{"Saldo Inicial", money.Format(s.Opening)},
		stat{"Ingresos", money.Format(s.Income)},
		stat{"Egresos", money.Format(s.Expenses)},
		stat{"Saldo Final", money.Format(s.Closing)},
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		column{"Fecha", 2, align.Left},
		column{"Hora", 2, align.Left},
		column{"Productos", 5, align.Left},
		column{"Cantidad", 1, align.Center},
		column{"Total", 2, align.Right},
	))
	for _, sale := range report.Sales {
		m.AddRows(saleRow(sale, loc, money))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(statsRow(
		stat{"Total de Ventas", money.Format(s.Income)},
		stat{"Número de Transacciones", strconv.Itoa(s.SalesCount)},
		stat{"Venta Promedio", money.Format(s.AverageTicket)},
		stat{"Utilidad", money.Format(s.Profit)},
	))
	return generate(m)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y subtítulo (der).
func headerRow(title, subtitle string) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(6).Add(
			text.New(subtitle, props.Text{
				Size: 8, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

type stat struct {
	label string
	value string
}

// statsRow: tarjetas con etiqueta y valor repartidas en las 12 columnas.
func statsRow(stats ...stat) core.Row {
	size := 12 / len(stats)
	cols := make([]core.Col, 0, len(stats))
	for _, s := range stats {
		cols = append(cols, col.New(size).Add(
			text.New(s.label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(s.value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 5}),
		))
	}
	return row.New(14).Add(cols...)
}

type column struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de tabla con fondo de color primario.
func tableHeaderRow(columns ...column) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
}

// inventoryRow: stock en rojo cuando está en o bajo el mínimo.
func inventoryRow(p entity.Product, money currency.Formatter) core.Row {
	stockColor := colorSuccess
	if p.IsLowStock() {
		stockColor = colorDanger
	}
	return row.New(6).Add(
		cell(p.SKU, 1, align.Left),
		cell(p.Name, 3, align.Left),
		cell(p.Category, 2, align.Left),
		col.New(1).Add(text.New(strconv.Itoa(p.Stock), props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: align.Center, Top: 1, Color: stockColor,
		})),
		cell(money.Format(p.Price), 1, align.Right),
		cell(money.Format(p.StockValue()), 1, align.Right),
		cell(nonEmpty(p.ExpiryDate, "—"), 1, align.Center),
		cell(nonEmpty(p.Supplier, "—"), 2, align.Left),
	)
}

func saleRow(sale entity.Sale, loc *time.Location, money currency.Formatter) core.Row {
	at := sale.CreatedAt.In(loc)
	names := make([]string, 0, len(sale.Items))
	for _, it := range sale.Items {
		names = append(names, it.Name)
	}
	return row.New(6).Add(
		cell(at.Format("02/01/2006"), 2, align.Left),
		cell(at.Format("15:04:05"), 2, align.Left),
		cell(strings.Join(names, ", "), 5, align.Left),
		cell(strconv.Itoa(sale.Units()), 1, align.Center),
		col.New(2).Add(text.New(money.Format(sale.Total), props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

func footerRow(label string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 1,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// longDate fecha larga en español, ej: "miércoles, 15 de mayo de 2024".
func longDate(t time.Time) string {
	days := [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	months := [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	return fmt.Sprintf("%s, %d de %s de %d", days[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}
