package entity

import (
	"time"

	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
)

// Tipos de evento del log append-only por línea de crédito.
const (
	EventReserved        = "Reserved"
	EventReleased        = "Released"
	EventInterestAccrued = "InterestAccrued"
)

// LedgerEvent entrada append-only del ledger. AvailableCredit e
// InterestAccrued de una línea son reproducibles por replay de sus eventos
// (ver credit.ReplayAvailableCredit), lo que da recuperación ante caídas y
// pista de auditoría.
type LedgerEvent struct {
	ID            string
	CreditLineID  string
	Type          string
	Amount        money.Paise
	VIN           string // vacío en eventos de interés
	EffectiveDate time.Time
	CreatedAt     time.Time
}
