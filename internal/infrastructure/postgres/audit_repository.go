package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository sobre PostgreSQL (usable con
// pool o tx). Solo alta y lectura: los registros Completed son inmutables.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste la auditoría y sus verificaciones por VIN.
func (r *AuditRepo) Create(a *entity.Audit) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO audits (id, dealership_id, audit_date, auditor_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.DealershipID, a.AuditDate, a.AuditorName, a.Status, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	for _, v := range a.AuditedVehicles {
		_, err := r.q.Exec(ctx, `
			INSERT INTO audit_vehicles (audit_id, vin, verification_status, notes)
			VALUES ($1, $2, $3, $4)`,
			a.ID, v.VIN, v.VerificationStatus, v.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert audit vehicle: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una auditoría con sus vehículos. nil si no existe.
func (r *AuditRepo) GetByID(id string) (*entity.Audit, error) {
	ctx := context.Background()
	var a entity.Audit
	err := r.q.QueryRow(ctx, `
		SELECT id, dealership_id, audit_date, auditor_name, status, created_at
		FROM audits WHERE id = $1`, id).Scan(
		&a.ID, &a.DealershipID, &a.AuditDate, &a.AuditorName, &a.Status, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit: %w", err)
	}
	if err := r.loadVehicles(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// List lista auditorías, opcionalmente por concesionario; limit <= 0 trae
// todas. Cada auditoría sale con sus vehículos cargados.
func (r *AuditRepo) List(dealershipID string, limit, offset int) ([]*entity.Audit, error) {
	ctx := context.Background()
	query := `SELECT id, dealership_id, audit_date, auditor_name, status, created_at FROM audits`
	args := []any{}
	if dealershipID != "" {
		query += ` WHERE dealership_id = $1`
		args = append(args, dealershipID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id OFFSET $%d`, len(args)+1)
	args = append(args, offset)
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()

	var out []*entity.Audit
	for rows.Next() {
		var a entity.Audit
		if err := rows.Scan(&a.ID, &a.DealershipID, &a.AuditDate, &a.AuditorName, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, a := range out {
		if err := r.loadVehicles(ctx, a); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *AuditRepo) loadVehicles(ctx context.Context, a *entity.Audit) error {
	rows, err := r.q.Query(ctx, `
		SELECT vin, verification_status, notes
		FROM audit_vehicles WHERE audit_id = $1 ORDER BY vin`, a.ID)
	if err != nil {
		return fmt.Errorf("list audit vehicles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v entity.AuditedVehicle
		if err := rows.Scan(&v.VIN, &v.VerificationStatus, &v.Notes); err != nil {
			return fmt.Errorf("scan audit vehicle: %w", err)
		}
		a.AuditedVehicles = append(a.AuditedVehicles, v)
	}
	return rows.Err()
}
