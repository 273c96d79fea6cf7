package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/backup"
)

// BackupHandler descarga y restauración del respaldo completo (solo admin).
type BackupHandler struct {
	uc *backup.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export godoc
// @Summary      Descargar respaldo
// @Description  Adjunto farmacia_backup_AAAA-MM-DD.json con todas las colecciones.
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  backup.Document
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	doc, err := h.uc.Export(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment("farmacia_backup_" + doc.Timestamp.Format("2006-01-02") + ".json")
	return c.JSON(doc)
}

// Import godoc
// @Summary      Restaurar respaldo
// @Description  Cada colección presente reemplaza a la guardada. Formato inválido devuelve 400 sin cambios.
// @Tags         backup
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  backup.Document  true  "Respaldo"
// @Success      200   {object}  backup.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/backup [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	out, err := h.uc.Import(c.UserContext(), c.Body())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
