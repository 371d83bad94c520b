package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrInsufficientCredit  = errors.New("crédito disponible insuficiente")
	ErrDuplicateVin        = errors.New("el VIN ya está registrado")
	ErrDuplicateCreditLine = errors.New("el concesionario ya tiene línea de crédito")
	ErrDealershipNotActive = errors.New("el concesionario no está activo")
	ErrCreditLineNotActive = errors.New("la línea de crédito no está activa")
	ErrInvariantViolation  = errors.New("violación de invariante del ledger")

	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// InsufficientCreditError lleva los montos (en paise) de un rechazo por sobregiro.
// errors.Is(err, ErrInsufficientCredit) sigue funcionando vía Is.
type InsufficientCreditError struct {
	Requested int64
	Available int64
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("crédito insuficiente: solicitado %d paise, disponible %d paise", e.Requested, e.Available)
}

// Is permite comparar contra el sentinel ErrInsufficientCredit.
func (e *InsufficientCreditError) Is(target error) bool {
	return target == ErrInsufficientCredit
}
