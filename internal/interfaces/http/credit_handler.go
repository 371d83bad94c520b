package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/floorplan-pro/internal/application/credit"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
)

// CreditHandler maneja el ledger de líneas de crédito (protegido).
type CreditHandler struct {
	uc *credit.CreditLineUseCase
}

// NewCreditHandler construye el handler.
func NewCreditHandler(uc *credit.CreditLineUseCase) *CreditHandler {
	return &CreditHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir línea de crédito para un concesionario Activo
// @Tags         credit-lines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCreditLineRequest  true  "dealership_id, total_limit, interest_rate"
// @Success      201   {object}  dto.CreditLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/credit-lines [post]
func (h *CreditHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenCreditLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Open(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar una línea de crédito
// @Tags         credit-lines
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.CreditLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credit-lines/{id} [get]
func (h *CreditHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar líneas de crédito
// @Tags         credit-lines
// @Security     Bearer
// @Produce      json
// @Param        dealership_id  query  string  false  "Filtrar por concesionario"
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.CreditLineListResponse
// @Router       /api/credit-lines [get]
func (h *CreditHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	out, err := h.uc.List(c.Query("dealership_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Suspend godoc
// @Summary      Suspender una línea (no admite nuevas reservas)
// @Tags         credit-lines
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.CreditLineResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/credit-lines/{id}/suspend [post]
func (h *CreditHandler) Suspend(c *fiber.Ctx) error {
	out, err := h.uc.Suspend(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reactivate godoc
// @Summary      Reactivar una línea suspendida
// @Tags         credit-lines
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.CreditLineResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/credit-lines/{id}/reactivate [post]
func (h *CreditHandler) Reactivate(c *fiber.Ctx) error {
	out, err := h.uc.Reactivate(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AccrueInterest godoc
// @Summary      Devengar interés simple hasta una fecha (idempotente)
// @Tags         credit-lines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la línea"
// @Param        body  body  dto.AccrueInterestRequest  true  "as_of_date (YYYY-MM-DD)"
// @Success      200   {object}  dto.CreditLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/credit-lines/{id}/accrue-interest [post]
func (h *CreditHandler) AccrueInterest(c *fiber.Ctx) error {
	var in dto.AccrueInterestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	asOf, err := time.Parse("2006-01-02", in.AsOfDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of_date debe ser YYYY-MM-DD"})
	}
	out, err := h.uc.AccrueInterest(c.Context(), c.Params("id"), asOf)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Utilization godoc
// @Summary      Fracción del límite dispuesta
// @Tags         credit-lines
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.UtilizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credit-lines/{id}/utilization [get]
func (h *CreditHandler) Utilization(c *fiber.Ctx) error {
	out, err := h.uc.Utilization(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Events godoc
// @Summary      Log append-only de la línea (Reserved/Released/InterestAccrued)
// @Tags         credit-lines
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la línea"
// @Success      200  {array}  dto.LedgerEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credit-lines/{id}/events [get]
func (h *CreditHandler) Events(c *fiber.Ctx) error {
	out, err := h.uc.Events(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
