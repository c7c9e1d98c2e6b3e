package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/sales"
)

// ReturnHandler maneja devoluciones y cambios (protegido).
type ReturnHandler struct {
	uc *sales.ReturnUseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *sales.ReturnUseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Initiate godoc
// @Summary      Iniciar devolución (sin efecto de stock)
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitiateReturnRequest  true  "sale_id, items con reason/condition"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Initiate(c *fiber.Ctx) error {
	var in dto.InitiateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Initiate(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Process godoc
// @Summary      Procesar devolución (reembolso o cambio)
// @Description  Reingresa el stock, crea la transacción financiera y, si es
//
//	cambio, la venta anidada de reemplazo. Todo en una transacción.
//
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessReturnRequest  true  "location_id, resolution, exchange_items"
// @Success      200   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/process [post]
func (h *ReturnHandler) Process(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badID(c)
	}
	var in dto.ProcessReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Process(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID devuelve una devolución con sus líneas y transacción.
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badID(c)
	}
	resp, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List lista devoluciones.
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	resp, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
