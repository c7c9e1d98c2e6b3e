package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/reports"
)

// ReportHandler maneja reportes e historiales (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Productos en o bajo su punto de ressuprimento
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItem
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// Valuation devuelve el valor del inventario a precio de compra.
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	resp, err := h.uc.Valuation(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// TopSellers ranking de productos por unidades vendidas (?limit=N).
func (h *ReportHandler) TopSellers(c *fiber.Ctx) error {
	items, err := h.uc.TopSellers(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// KitRanking ranking de kits por unidades vendidas (?limit=N).
func (h *ReportHandler) KitRanking(c *fiber.Ctx) error {
	items, err := h.uc.KitRanking(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// SalesSummary godoc
// @Summary      Resumen de ventas de un período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "fecha inicial (RFC 3339 o 2006-01-02)"
// @Param        to    query  string  true  "fecha final"
// @Success      200   {object}  dto.SalesSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	from, ok := parseDate(c.Query("from"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro from inválido"})
	}
	to, ok := parseDate(c.Query("to"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro to inválido"})
	}
	// Fecha sin hora: incluir el día completo.
	if to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	resp, err := h.uc.SalesSummary(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// MovementsByProduct historial de movimientos de un producto.
func (h *ReportHandler) MovementsByProduct(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badID(c)
	}
	limit, offset := pagination(c)
	items, err := h.uc.MovementsByProduct(c.Context(), id, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// MovementsByLocation historial de movimientos de una ubicación.
func (h *ReportHandler) MovementsByLocation(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badID(c)
	}
	limit, offset := pagination(c)
	items, err := h.uc.MovementsByLocation(c.Context(), id, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// MovementsBySupplier historial de movimientos de los productos de un proveedor.
func (h *ReportHandler) MovementsBySupplier(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badID(c)
	}
	limit, offset := pagination(c)
	items, err := h.uc.MovementsBySupplier(c.Context(), id, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
