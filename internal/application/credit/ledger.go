package credit

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/floorplan-pro/internal/domain"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
	"github.com/tu-usuario/floorplan-pro/pkg/logger"
)

// ReserveInTx reserva crédito contra la línea: único camino por el que
// AvailableCredit decrementa. Bloquea la fila (GetForUpdate), verifica
// estado Active y capacidad de forma atómica; si no alcanza, retorna
// InsufficientCreditError sin mutar nada. Llamar dentro de un TxRunner.
func ReserveInTx(
	lineRepo repository.CreditLineRepository,
	eventRepo repository.LedgerEventRepository,
	lineID string,
	amount money.Paise,
	vin string,
	now time.Time,
) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	line, err := lineRepo.GetForUpdate(lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return domain.ErrNotFound
	}
	if line.Status != entity.CreditLineStatusActive {
		return domain.ErrCreditLineNotActive
	}
	if amount > line.AvailableCredit {
		return &domain.InsufficientCreditError{
			Requested: int64(amount),
			Available: int64(line.AvailableCredit),
		}
	}
	line.AvailableCredit -= amount
	line.UpdatedAt = now
	if err := lineRepo.Update(line); err != nil {
		return err
	}
	return eventRepo.Append(&entity.LedgerEvent{
		ID:            uuid.New().String(),
		CreditLineID:  line.ID,
		Type:          entity.EventReserved,
		Amount:        amount,
		VIN:           vin,
		EffectiveDate: now,
		CreatedAt:     now,
	})
}

// ReleaseInTx devuelve crédito a la línea, siempre el principal original,
// nunca el monto de repago. Si la liberación excedería TotalLimit se
// recorta al límite y se registra la violación de invariante en el log
// estructurado (el caller liberó más de lo que reservó); no es un error
// para el caller. Llamar dentro de un TxRunner.
func ReleaseInTx(
	log *logger.Logger,
	lineRepo repository.CreditLineRepository,
	eventRepo repository.LedgerEventRepository,
	lineID string,
	amount money.Paise,
	vin string,
	now time.Time,
) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	line, err := lineRepo.GetForUpdate(lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return domain.ErrNotFound
	}
	released := amount
	if line.AvailableCredit+amount > line.TotalLimit {
		released = line.TotalLimit - line.AvailableCredit
		log.Warn().
			Str("event", "invariant_violation").
			Str("credit_line_id", line.ID).
			Str("vin", vin).
			Int64("requested_paise", int64(amount)).
			Int64("released_paise", int64(released)).
			Msg("release excede el límite total; recortado al límite")
	}
	line.AvailableCredit += released
	line.UpdatedAt = now
	if err := lineRepo.Update(line); err != nil {
		return err
	}
	return eventRepo.Append(&entity.LedgerEvent{
		ID:            uuid.New().String(),
		CreditLineID:  line.ID,
		Type:          entity.EventReleased,
		Amount:        released,
		VIN:           vin,
		EffectiveDate: now,
		CreatedAt:     now,
	})
}

// ReplayAvailableCredit reconstruye AvailableCredit desde el log
// append-only: parte del límite total y aplica Reserved/Released en orden.
// Base de la recuperación ante caídas y de los chequeos de consistencia.
func ReplayAvailableCredit(totalLimit money.Paise, events []*entity.LedgerEvent) money.Paise {
	available := totalLimit
	for _, ev := range events {
		switch ev.Type {
		case entity.EventReserved:
			available -= ev.Amount
		case entity.EventReleased:
			available += ev.Amount
		}
	}
	return available
}

// ReplayInterestAccrued reconstruye el interés devengado desde el log.
func ReplayInterestAccrued(events []*entity.LedgerEvent) money.Paise {
	var accrued money.Paise
	for _, ev := range events {
		if ev.Type == entity.EventInterestAccrued {
			accrued += ev.Amount
		}
	}
	return accrued
}
