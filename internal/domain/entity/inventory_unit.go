package entity

import (
	"time"

	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
)

// Estados de una unidad de inventario financiada.
const (
	UnitStatusPendingFunding     = "Pending Funding"
	UnitStatusInStock            = "In Stock"
	UnitStatusSoldPendingPayment = "Sold - Pending Payment"
	UnitStatusRepaid             = "Repaid"       // terminal
	UnitStatusAuditMissing       = "Audit - Missing" // terminal
)

// Estados de hipoteca (gravamen del financiador sobre la unidad).
const (
	HypothecationPending   = "Pending"
	HypothecationCompleted = "Completed"
	HypothecationNocIssued = "NOC Issued"
)

var unitTransitions = map[string][]string{
	UnitStatusPendingFunding:     {UnitStatusInStock},
	UnitStatusInStock:            {UnitStatusSoldPendingPayment, UnitStatusRepaid, UnitStatusAuditMissing},
	UnitStatusSoldPendingPayment: {UnitStatusRepaid},
	UnitStatusRepaid:             {},
	UnitStatusAuditMissing:       {},
}

// FinancedStatuses estados que cuentan como "financiado y dispuesto" para
// la conservación de crédito y para el conjunto esperado de auditoría.
var FinancedStatuses = []string{UnitStatusInStock, UnitStatusSoldPendingPayment}

// InventoryUnit vehículo financiado, identificado por VIN (global, nunca
// reutilizado). DealershipID es el dueño al momento de la financiación y
// es inmutable, igual que los campos descriptivos del OEM.
type InventoryUnit struct {
	VIN              string
	DealershipID     string
	CreditLineID     string
	OemInvoiceNumber string
	Make             string
	Model            string
	Year             int
	FinancedAmount   money.Paise // principal, fijo desde la financiación
	FundingDate      time.Time
	Status           string
	Hypothecation    string
	RepaymentDate    time.Time   // cero hasta transición a Repaid
	RepaymentAmount  money.Paise // lo cobrado, puede diferir del principal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanTransitionTo indica si el cambio de estado está en la tabla.
func (u *InventoryUnit) CanTransitionTo(next string) bool {
	for _, s := range unitTransitions[u.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsFinanced indica si la unidad consume crédito de la línea.
func (u *InventoryUnit) IsFinanced() bool {
	return u.Status == UnitStatusInStock || u.Status == UnitStatusSoldPendingPayment
}

// DaysInStock días (piso) entre la financiación y asOf, o hasta la fecha de
// repago si la unidad ya fue repagada. Derivado, nunca se persiste.
func (u *InventoryUnit) DaysInStock(asOf time.Time) int {
	end := asOf
	if !u.RepaymentDate.IsZero() && u.RepaymentDate.Before(asOf) {
		end = u.RepaymentDate
	}
	if end.Before(u.FundingDate) {
		return 0
	}
	return int(end.Sub(u.FundingDate).Hours() / 24)
}
