package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/application/funding"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

// InventoryHandler maneja las unidades de inventario financiadas
// (protegido).
type InventoryHandler struct {
	uc *funding.FundUnitUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *funding.FundUnitUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Fund godoc
// @Summary      Financiar una unidad nueva contra la línea del concesionario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FundUnitRequest  true  "dealership_id, vin, oem_invoice_number, make, model, year, financed_amount"
// @Success      201   {object}  dto.InventoryUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/units [post]
func (h *InventoryHandler) Fund(c *fiber.Ctx) error {
	var in dto.FundUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Fund(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByVIN godoc
// @Summary      Consultar una unidad por VIN
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        vin  path  string  true  "VIN de la unidad"
// @Success      200  {object}  dto.InventoryUnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/units/{vin} [get]
func (h *InventoryHandler) GetByVIN(c *fiber.Ctx) error {
	out, err := h.uc.GetByVIN(c.Params("vin"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar unidades con filtros opcionales
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        dealership_id  query  string  false  "Filtrar por concesionario"
// @Param        status         query  string  false  "Filtrar por estado"
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory/units [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	out, err := h.uc.List(repository.UnitFilter{
		DealershipID: c.Query("dealership_id"),
		Status:       c.Query("status"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkSold godoc
// @Summary      Marcar unidad vendida (In Stock -> Sold - Pending Payment)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        vin  path  string  true  "VIN de la unidad"
// @Success      200  {object}  dto.InventoryUnitResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/units/{vin}/sold [post]
func (h *InventoryHandler) MarkSold(c *fiber.Ctx) error {
	out, err := h.uc.MarkSold(c.Context(), c.Params("vin"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Repay godoc
// @Summary      Repagar una unidad (libera el principal en la línea)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        vin   path  string  true  "VIN de la unidad"
// @Param        body  body  dto.RepayUnitRequest  true  "repayment_amount"
// @Success      200   {object}  dto.InventoryUnitResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/units/{vin}/repay [post]
func (h *InventoryHandler) Repay(c *fiber.Ctx) error {
	var in dto.RepayUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Repay(c.Context(), c.Params("vin"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CompleteHypothecation godoc
// @Summary      Registrar gravamen completado (Pending -> Completed)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        vin  path  string  true  "VIN de la unidad"
// @Success      200  {object}  dto.InventoryUnitResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/units/{vin}/hypothecation/complete [post]
func (h *InventoryHandler) CompleteHypothecation(c *fiber.Ctx) error {
	out, err := h.uc.CompleteHypothecation(c.Context(), c.Params("vin"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
