// Package excel exporta inventario y ventas a .xlsx con excelize.
package excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/analytics"
)

const (
	inventorySheet = "Inventario"
	salesSheet     = "Ventas"
)

var _ analytics.ReportRenderer = (*Exporter)(nil)

// Exporter implementa analytics.ReportRenderer generando libros de Excel.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ContentType tipo MIME de la salida.
func (e *Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

type column struct {
	header string
	width  float64
}

var inventoryColumns = []column{
	{"SKU", 12},
	{"Producto", 30},
	{"Categoría", 18},
	{"Stock", 8},
	{"Stock Mínimo", 12},
	{"Precio Unitario", 12},
	{"Valor Total", 12},
	{"Proveedor", 25},
	{"Fecha Vencimiento", 15},
}

var salesColumns = []column{
	{"Fecha", 12},
	{"Hora", 10},
	{"Productos", 50},
	{"Cantidad Total", 12},
	{"Total", 12},
}

// RenderInventory una fila por producto.
func (e *Exporter) RenderInventory(_ context.Context, report *analytics.InventoryReport) ([]byte, error) {
	rows := make([][]any, 0, len(report.Products))
	for _, p := range report.Products {
		rows = append(rows, []any{
			p.SKU,
			p.Name,
			p.Category,
			p.Stock,
			p.MinStock,
			p.Price.InexactFloat64(),
			p.StockValue().InexactFloat64(),
			p.Supplier,
			p.ExpiryDate,
		})
	}
	return build(inventorySheet, inventoryColumns, rows)
}

// RenderSales una fila por venta: "Nombre (cantidad)" separados por coma.
func (e *Exporter) RenderSales(_ context.Context, report *analytics.SalesReport) ([]byte, error) {
	loc := report.GeneratedAt.Location()
	rows := make([][]any, 0, len(report.Sales))
	for _, s := range report.Sales {
		at := s.CreatedAt.In(loc)
		items := make([]string, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, fmt.Sprintf("%s (%d)", it.Name, it.Quantity))
		}
		rows = append(rows, []any{
			at.Format("02/01/2006"),
			at.Format("15:04:05"),
			strings.Join(items, ", "),
			s.Units(),
			s.Total.InexactFloat64(),
		})
	}
	return build(salesSheet, salesColumns, rows)
}

func build(sheet string, columns []column, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: borrar hoja por defecto: %w", err)
	}

	headers := make([]any, 0, len(columns))
	for i, c := range columns {
		headers = append(headers, c.header)
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return nil, fmt.Errorf("excel: ancho de columna: %w", err)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("excel: encabezados: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(sheet, "A1", last+"1", bold); err != nil {
		return nil, err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
