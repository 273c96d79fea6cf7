package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/farmacia-pos/internal/application/analytics"
	"github.com/jhoicas/farmacia-pos/internal/application/dto"
)

// DashboardHandler maneja el dashboard y los reportes.
type DashboardHandler struct {
	uc      *appanalytics.DashboardUseCase
	reports *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, reports *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, reports: reports}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Description  Ventas del día y del mes en curso; las fechas se calculan con la zona horaria de caja.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// SalesReport godoc
// @Summary      Reporte de ventas
// @Description  Total, transacciones, promedio, egresos del mismo rango, utilidad y saldo final.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to    query  string  false  "Hasta (AAAA-MM-DD)"
// @Success      200   {object}  analytics.SalesReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *DashboardHandler) SalesReport(c *fiber.Ctx) error {
	var f dto.DateRangeFilter
	if err := c.QueryParser(&f); err != nil {
		return badQuery(c)
	}
	out, err := h.reports.SalesReport(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportInventory godoc
// @Summary      Exportar inventario
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "pdf o xlsx"
// @Success      200     {file}    file
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/inventory/export [get]
func (h *DashboardHandler) ExportInventory(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	file, err := h.reports.ExportInventory(c.UserContext(), in.Format)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// ExportSales godoc
// @Summary      Exportar reporte de ventas
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "pdf o xlsx"
// @Param        from    query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to      query  string  false  "Hasta (AAAA-MM-DD)"
// @Success      200     {file}    file
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/sales/export [get]
func (h *DashboardHandler) ExportSales(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	file, err := h.reports.ExportSales(c.UserContext(), dto.DateRangeFilter{From: in.From, To: in.To}, in.Format)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, file *appanalytics.ExportFile) error {
	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}
