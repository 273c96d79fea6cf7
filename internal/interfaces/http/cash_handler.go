package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/cashregister"
	"github.com/jhoicas/farmacia-pos/internal/application/dto"
)

// CashHandler caja diaria: saldo inicial, egresos, resumen y cierre.
type CashHandler struct {
	uc *cashregister.UseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *cashregister.UseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// Get godoc
// @Summary      Estado de la caja
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.CashRegister
// @Router       /api/cash [get]
func (h *CashHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetOpening godoc
// @Summary      Fijar saldo inicial
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpeningBalanceRequest  true  "Saldo inicial"
// @Success      200   {object}  entity.CashRegister
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash/opening [put]
func (h *CashHandler) SetOpening(c *fiber.Ctx) error {
	var in dto.OpeningBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetOpeningBalance(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddExpense godoc
// @Summary      Registrar egreso
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExpenseRequest  true  "Descripción y monto"
// @Success      201   {object}  entity.Expense
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash/expenses [post]
func (h *CashHandler) AddExpense(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PostExpense(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteExpense godoc
// @Summary      Eliminar egreso
// @Description  Idempotente.
// @Tags         cash
// @Security     Bearer
// @Param        id   path  string  true  "ID del egreso"
// @Success      204
// @Router       /api/cash/expenses/{id} [delete]
func (h *CashHandler) DeleteExpense(c *fiber.Ctx) error {
	if err := h.uc.RemoveExpense(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Daily godoc
// @Summary      Resumen de caja del día
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (AAAA-MM-DD); vacío = hoy"
// @Success      200   {object}  cashregister.DailyReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash/daily [get]
func (h *CashHandler) Daily(c *fiber.Ctx) error {
	out, err := h.uc.Daily(c.UserContext(), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar caja del día
// @Description  Cerrar un día ya cerrado devuelve 409.
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (AAAA-MM-DD); vacío = hoy"
// @Success      200   {object}  entity.LedgerPeriod
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/close [post]
func (h *CashHandler) Close(c *fiber.Ctx) error {
	out, err := h.uc.ClosePeriod(c.UserContext(), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Periods godoc
// @Summary      Periodos de caja
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.LedgerPeriod
// @Router       /api/cash/periods [get]
func (h *CashHandler) Periods(c *fiber.Ctx) error {
	out, err := h.uc.Periods(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
