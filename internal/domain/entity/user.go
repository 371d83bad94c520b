package entity

import "time"

// Roles de la API administrativa.
const (
	RoleAdmin     = "admin"      // todo, incluida apertura de líneas
	RoleCreditOps = "credit_ops" // operaciones de financiación y repago
	RoleAuditor   = "auditor"    // solo lectura + ejecutar auditorías
)

// User usuario de la API administrativa del ledger.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
