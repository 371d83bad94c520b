package entity

import "time"

// Estados del ciclo de vida de un concesionario.
const (
	DealershipStatusOnboarding = "Onboarding"
	DealershipStatusActive     = "Active"
	DealershipStatusSuspended  = "Suspended"
	DealershipStatusInactive   = "Inactive" // terminal
)

// dealershipTransitions tabla de transiciones permitidas.
// Suspended solo se alcanza desde Active; Inactive es terminal.
var dealershipTransitions = map[string][]string{
	DealershipStatusOnboarding: {DealershipStatusActive, DealershipStatusInactive},
	DealershipStatusActive:     {DealershipStatusSuspended, DealershipStatusInactive},
	DealershipStatusSuspended:  {DealershipStatusActive, DealershipStatusInactive},
	DealershipStatusInactive:   {},
}

// Dealership concesionario con acuerdo de financiación mayorista.
// Se crea en Onboarding y nunca se elimina.
type Dealership struct {
	ID               string
	Name             string
	PrincipalContact string
	Location         string
	Status           string
	AgreementDate    time.Time
	CreditLineID     string // vacío = sin línea de crédito adjunta
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanTransitionTo indica si el cambio de estado está en la tabla.
func (d *Dealership) CanTransitionTo(next string) bool {
	for _, s := range dealershipTransitions[d.Status] {
		if s == next {
			return true
		}
	}
	return false
}
