package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/floorplan-pro/internal/application/reporting"
)

// ReportHandler métricas agregadas del portafolio (protegido, solo lectura).
type ReportHandler struct {
	uc *reporting.SummaryUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.SummaryUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// PortfolioSummary godoc
// @Summary      Resumen del portafolio mayorista
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PortfolioSummaryResponse
// @Router       /api/reports/portfolio-summary [get]
func (h *ReportHandler) PortfolioSummary(c *fiber.Ctx) error {
	out, err := h.uc.PortfolioSummary()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
