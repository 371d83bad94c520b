package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/application/reconcile"
)

// AuditHandler maneja las conciliaciones físicas de inventario (protegido).
type AuditHandler struct {
	uc *reconcile.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *reconcile.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Run godoc
// @Summary      Ejecutar auditoría física (compara VINs observados vs financiados)
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RunAuditRequest  true  "dealership_id, auditor_name, observed_vins"
// @Success      201   {object}  dto.AuditResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/audits [post]
func (h *AuditHandler) Run(c *fiber.Ctx) error {
	var in dto.RunAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Run(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar una auditoría
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.AuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [get]
func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar auditorías
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        dealership_id  query  string  false  "Filtrar por concesionario"
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.AuditListResponse
// @Router       /api/audits [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	out, err := h.uc.List(c.Query("dealership_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
