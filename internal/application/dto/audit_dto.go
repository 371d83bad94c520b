package dto

import "time"

// RunAuditRequest ejecución de una conciliación física de inventario.
// ObservedVins son los VIN encontrados en piso por el auditor.
type RunAuditRequest struct {
	DealershipID string   `json:"dealership_id" validate:"required,uuid4"`
	AuditorName  string   `json:"auditor_name" validate:"required"`
	ObservedVins []string `json:"observed_vins"`
}

// AuditedVehicleResponse resultado por VIN.
type AuditedVehicleResponse struct {
	VIN                string `json:"vin"`
	VerificationStatus string `json:"verification_status"`
	Notes              string `json:"notes,omitempty"`
}

// AuditResponse registro histórico de auditoría.
type AuditResponse struct {
	ID              string                   `json:"id"`
	DealershipID    string                   `json:"dealership_id"`
	AuditDate       time.Time                `json:"audit_date"`
	AuditorName     string                   `json:"auditor_name"`
	Status          string                   `json:"status"`
	AuditedVehicles []AuditedVehicleResponse `json:"audited_vehicles"`
}

// AuditListResponse listado paginado.
type AuditListResponse struct {
	Items []AuditResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
