package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/credit"
	"github.com/jhoicas/farmacia-pos/internal/application/dto"
)

// ClientHandler clientes con crédito y su cuenta corriente.
type ClientHandler struct {
	uc *credit.UseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *credit.UseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientRequest  true  "Datos del cliente"
// @Success      201   {object}  entity.Client
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Nombre o teléfono"
// @Success      200     {array}  entity.Client
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var f dto.ClientFilter
	if err := c.QueryParser(&f); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  entity.Client
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.ClientRequest  true  "Datos del cliente"
// @Success      200   {object}  entity.Client
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Description  Con saldo pendiente devuelve 409 CLIENT_HAS_BALANCE.
// @Tags         clients
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Charge godoc
// @Summary      Cargo a crédito
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.ChargeRequest  true  "Monto"
// @Success      200   {object}  entity.Client
// @Failure      422   {object}  dto.ErrorResponse  "límite de crédito excedido"
// @Router       /api/clients/{id}/charges [post]
func (h *ClientHandler) Charge(c *fiber.Ctx) error {
	var in dto.ChargeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PostCreditSale(c.UserContext(), c.Params("id"), in.Amount, in.SaleID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Payment godoc
// @Summary      Registrar abono
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.PaymentRequest  true  "Monto y descripción"
// @Success      201   {object}  entity.Payment
// @Failure      422   {object}  dto.ErrorResponse  "abono mayor al saldo"
// @Router       /api/clients/{id}/payments [post]
func (h *ClientHandler) Payment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PostPayment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  credit.Statement
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/statement [get]
func (h *ClientHandler) Statement(c *fiber.Ctx) error {
	out, err := h.uc.Statement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
