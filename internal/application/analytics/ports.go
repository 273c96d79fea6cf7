package analytics

import "context"

// Formatos de exportación soportados.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// ReportRenderer genera el archivo de un reporte (PDF, Excel).
type ReportRenderer interface {
	RenderInventory(ctx context.Context, report *InventoryReport) ([]byte, error)
	RenderSales(ctx context.Context, report *SalesReport) ([]byte, error)
	ContentType() string
}

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}
