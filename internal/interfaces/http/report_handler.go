package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/reports"
)

// ReportHandler reportes de flujo de caja y valoración (protegido, solo admin).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// CashFlow godoc
// @Summary      Flujo de caja del rango (ventas sin CANCELLED)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Fecha inicial YYYY-MM-DD"
// @Param        to    query  string  true  "Fecha final YYYY-MM-DD"
// @Success      200   {object}  dto.CashFlowResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/cash-flow [get]
func (h *ReportHandler) CashFlow(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}
	// el rango es inclusivo hasta el final del día
	to = to.Add(24*time.Hour - time.Nanosecond)
	out, err := h.uc.CashFlow(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InventoryValuation godoc
// @Summary      Valoración de inventario (stock proyectado × costo vigente)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) InventoryValuation(c *fiber.Ctx) error {
	out, err := h.uc.InventoryValuation(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
