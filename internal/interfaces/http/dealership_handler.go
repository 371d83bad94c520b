package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/application/registry"
)

// DealershipHandler maneja el registro de concesionarios (protegido).
type DealershipHandler struct {
	uc *registry.DealershipUseCase
}

// NewDealershipHandler construye el handler.
func NewDealershipHandler(uc *registry.DealershipUseCase) *DealershipHandler {
	return &DealershipHandler{uc: uc}
}

// Create godoc
// @Summary      Dar de alta un concesionario (Onboarding)
// @Tags         dealerships
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDealershipRequest  true  "name, principal_contact, location, agreement_date"
// @Success      201   {object}  dto.DealershipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dealerships [post]
func (h *DealershipHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDealershipRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar un concesionario
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del concesionario"
// @Success      200  {object}  dto.DealershipResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dealerships/{id} [get]
func (h *DealershipHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar concesionarios
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.DealershipListResponse
// @Router       /api/dealerships [get]
func (h *DealershipHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Activar un concesionario
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del concesionario"
// @Success      200  {object}  dto.DealershipResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/dealerships/{id}/activate [post]
func (h *DealershipHandler) Activate(c *fiber.Ctx) error {
	out, err := h.uc.Activate(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Suspend godoc
// @Summary      Suspender un concesionario (solo desde Active)
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del concesionario"
// @Success      200  {object}  dto.DealershipResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/dealerships/{id}/suspend [post]
func (h *DealershipHandler) Suspend(c *fiber.Ctx) error {
	out, err := h.uc.Suspend(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Dar de baja un concesionario (Inactive, terminal)
// @Tags         dealerships
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del concesionario"
// @Success      200  {object}  dto.DealershipResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/dealerships/{id}/deactivate [post]
func (h *DealershipHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parsePage lee limit/offset de query con defaults.
func parsePage(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	page.DefaultPage()
	return page
}
