package entity

import "time"

// Estados de una auditoría física de inventario.
const (
	AuditStatusScheduled  = "Scheduled"
	AuditStatusInProgress = "In Progress"
	AuditStatusCompleted  = "Completed" // inmutable a partir de aquí
	AuditStatusCancelled  = "Cancelled"
)

// Resultados de verificación por VIN.
const (
	VerificationVerified       = "Verified"
	VerificationMissing        = "Missing"
	VerificationSoldUnreported = "Sold - Unreported"
)

// AuditedVehicle resultado de verificación de un VIN en una auditoría.
type AuditedVehicle struct {
	VIN                string
	VerificationStatus string
	Notes              string
}

// Audit registro histórico de una conciliación física. Una vez Completed
// no se modifica; re-ejecutar una auditoría crea un registro nuevo.
// Las auditorías nunca mutan balances de crédito.
type Audit struct {
	ID              string
	DealershipID    string
	AuditDate       time.Time
	AuditorName     string
	Status          string
	AuditedVehicles []AuditedVehicle
	CreatedAt       time.Time
}
