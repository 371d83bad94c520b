package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
)

// Estados de una línea de crédito revolvente.
const (
	CreditLineStatusActive      = "Active"
	CreditLineStatusSuspended   = "Suspended"
	CreditLineStatusUnderReview = "Under Review"
	CreditLineStatusInactive    = "Inactive" // terminal
)

var creditLineTransitions = map[string][]string{
	CreditLineStatusActive:      {CreditLineStatusSuspended, CreditLineStatusUnderReview, CreditLineStatusInactive},
	CreditLineStatusSuspended:   {CreditLineStatusActive, CreditLineStatusInactive},
	CreditLineStatusUnderReview: {CreditLineStatusActive, CreditLineStatusSuspended, CreditLineStatusInactive},
	CreditLineStatusInactive:    {},
}

// CreditLine facilidad revolvente 1:1 con un concesionario.
//
// Invariante: 0 <= AvailableCredit <= TotalLimit, y
// TotalLimit - AvailableCredit == Σ FinancedAmount de las unidades del
// concesionario con estado InStock o SoldPendingPayment.
// AvailableCredit solo muta vía reserve (decrementa) y release (incrementa).
type CreditLine struct {
	ID               string
	DealershipID     string
	TotalLimit       money.Paise // fijo desde la apertura
	AvailableCredit  money.Paise
	InterestRate     decimal.Decimal // APR en porcentaje, ej. 12.50
	InterestAccrued  money.Paise     // monótono hasta liquidación
	LastInterestDate time.Time       // cero = nunca devengado
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanTransitionTo indica si el cambio de estado está en la tabla.
func (l *CreditLine) CanTransitionTo(next string) bool {
	for _, s := range creditLineTransitions[l.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// Drawn crédito dispuesto actualmente (TotalLimit - AvailableCredit).
func (l *CreditLine) Drawn() money.Paise {
	return l.TotalLimit - l.AvailableCredit
}

// Utilization fracción del límite dispuesta, 0 si el límite es cero.
func (l *CreditLine) Utilization() decimal.Decimal {
	if l.TotalLimit == 0 {
		return decimal.Zero
	}
	return l.Drawn().Decimal().Div(l.TotalLimit.Decimal())
}
