package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/domain"
	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
)

// respondError mapea errores de dominio a HTTP. Los handlers lo usan como
// última rama tras sus chequeos propios. INSUFFICIENT_CREDIT incluye
// requested/available para que el cliente pueda mostrar cuánto faltó; como
// todo monto externo, salen en rupias (el ledger trabaja en paise puertas
// adentro).
func respondError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientCreditError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_CREDIT",
			Message: "crédito disponible insuficiente",
			Details: map[string]any{
				"requested": money.Paise(insufficient.Requested).Decimal(),
				"available": money.Paise(insufficient.Available).Decimal(),
			},
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	case errors.Is(err, domain.ErrDuplicateVin):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_VIN", Message: "el VIN ya fue financiado (los VIN no se reutilizan)"})
	case errors.Is(err, domain.ErrDuplicateCreditLine):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_CREDIT_LINE", Message: "el concesionario ya tiene línea de crédito"})
	case errors.Is(err, domain.ErrDealershipNotActive):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DEALERSHIP_NOT_ACTIVE", Message: "el concesionario no está activo"})
	case errors.Is(err, domain.ErrCreditLineNotActive):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CREDIT_LINE_NOT_ACTIVE", Message: "la línea de crédito no admite reservas"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
