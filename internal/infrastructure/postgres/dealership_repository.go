package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

var _ repository.DealershipRepository = (*DealershipRepo)(nil)

// DealershipRepo implementación de DealershipRepository sobre PostgreSQL
// (usable con pool o tx).
type DealershipRepo struct {
	q Querier
}

// NewDealershipRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealershipRepository(q Querier) *DealershipRepo {
	return &DealershipRepo{q: q}
}

// Create persiste un concesionario nuevo.
func (r *DealershipRepo) Create(d *entity.Dealership) error {
	query := `
		INSERT INTO dealerships (id, name, principal_contact, location, status, agreement_date, credit_line_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Name, d.PrincipalContact, d.Location, d.Status,
		d.AgreementDate, d.CreditLineID, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dealership: %w", err)
	}
	return nil
}

// GetByID obtiene un concesionario por ID. nil si no existe.
func (r *DealershipRepo) GetByID(id string) (*entity.Dealership, error) {
	query := `
		SELECT id, name, principal_contact, location, status, agreement_date, credit_line_id, created_at, updated_at
		FROM dealerships WHERE id = $1`
	var d entity.Dealership
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.PrincipalContact, &d.Location, &d.Status,
		&d.AgreementDate, &d.CreditLineID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dealership: %w", err)
	}
	return &d, nil
}

// Update actualiza los campos mutables (estado, contacto, línea adjunta).
func (r *DealershipRepo) Update(d *entity.Dealership) error {
	query := `
		UPDATE dealerships SET name = $2, principal_contact = $3, location = $4, status = $5, credit_line_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Name, d.PrincipalContact, d.Location, d.Status, d.CreditLineID, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update dealership: %w", err)
	}
	return nil
}

// List lista concesionarios con paginación; limit <= 0 trae todos.
func (r *DealershipRepo) List(limit, offset int) ([]*entity.Dealership, error) {
	query := `
		SELECT id, name, principal_contact, location, status, agreement_date, credit_line_id, created_at, updated_at
		FROM dealerships ORDER BY created_at, id OFFSET $1`
	args := []any{offset}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dealerships: %w", err)
	}
	defer rows.Close()

	var out []*entity.Dealership
	for rows.Next() {
		var d entity.Dealership
		if err := rows.Scan(
			&d.ID, &d.Name, &d.PrincipalContact, &d.Location, &d.Status,
			&d.AgreementDate, &d.CreditLineID, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan dealership: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
