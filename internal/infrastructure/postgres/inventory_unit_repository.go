package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/floorplan-pro/internal/domain"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/money"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

var _ repository.InventoryUnitRepository = (*InventoryUnitRepo)(nil)

// InventoryUnitRepo implementación de InventoryUnitRepository sobre
// PostgreSQL (usable con pool o tx). El VIN es primary key: el insert de
// un VIN ya visto falla con ErrDuplicateVin en cualquier estado.
type InventoryUnitRepo struct {
	q Querier
}

// NewInventoryUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryUnitRepository(q Querier) *InventoryUnitRepo {
	return &InventoryUnitRepo{q: q}
}

const unitColumns = `vin, dealership_id, credit_line_id, oem_invoice_number, make, model, year, financed_amount, funding_date, status, hypothecation, repayment_date, repayment_amount, created_at, updated_at`

// Create persiste una unidad financiada nueva.
func (r *InventoryUnitRepo) Create(u *entity.InventoryUnit) error {
	query := `
		INSERT INTO inventory_units (` + unitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		u.VIN, u.DealershipID, u.CreditLineID, u.OemInvoiceNumber, u.Make, u.Model, u.Year,
		int64(u.FinancedAmount), u.FundingDate, u.Status, u.Hypothecation,
		nullableTime(u.RepaymentDate), int64(u.RepaymentAmount), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateVin
		}
		return fmt.Errorf("insert inventory unit: %w", err)
	}
	return nil
}

// GetByVIN obtiene una unidad por VIN. nil si no existe.
func (r *InventoryUnitRepo) GetByVIN(vin string) (*entity.InventoryUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM inventory_units WHERE vin = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, vin))
}

// Update persiste los campos mutables (estado, hipoteca, repago).
func (r *InventoryUnitRepo) Update(u *entity.InventoryUnit) error {
	query := `
		UPDATE inventory_units
		SET status = $2, hypothecation = $3, repayment_date = $4, repayment_amount = $5, updated_at = $6
		WHERE vin = $1`
	_, err := r.q.Exec(context.Background(), query,
		u.VIN, u.Status, u.Hypothecation, nullableTime(u.RepaymentDate),
		int64(u.RepaymentAmount), u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory unit: %w", err)
	}
	return nil
}

// List lista unidades con filtros opcionales; Limit <= 0 trae todas.
func (r *InventoryUnitRepo) List(filter repository.UnitFilter) ([]*entity.InventoryUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM inventory_units WHERE 1=1`
	args := []any{}
	if filter.DealershipID != "" {
		args = append(args, filter.DealershipID)
		query += fmt.Sprintf(` AND dealership_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	args = append(args, filter.Offset)
	query += fmt.Sprintf(` ORDER BY created_at, vin OFFSET $%d`, len(args))
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	return r.queryMany(query, args...)
}

// ListFinanced unidades del concesionario que consumen crédito (In Stock o
// Sold - Pending Payment). Dentro de una tx con la línea bloqueada produce
// el snapshot consistente que usa la auditoría.
func (r *InventoryUnitRepo) ListFinanced(dealershipID string) ([]*entity.InventoryUnit, error) {
	query := `
		SELECT ` + unitColumns + `
		FROM inventory_units
		WHERE dealership_id = $1 AND status = ANY($2)
		ORDER BY created_at, vin`
	return r.queryMany(query, dealershipID, entity.FinancedStatuses)
}

func (r *InventoryUnitRepo) queryMany(query string, args ...any) ([]*entity.InventoryUnit, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory units: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryUnit
	for rows.Next() {
		u, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *InventoryUnitRepo) scanOne(row pgx.Row) (*entity.InventoryUnit, error) {
	var u entity.InventoryUnit
	var financed, repayment int64
	var repaymentDate *time.Time
	err := row.Scan(
		&u.VIN, &u.DealershipID, &u.CreditLineID, &u.OemInvoiceNumber, &u.Make, &u.Model, &u.Year,
		&financed, &u.FundingDate, &u.Status, &u.Hypothecation,
		&repaymentDate, &repayment, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan inventory unit: %w", err)
	}
	u.FinancedAmount = money.Paise(financed)
	u.RepaymentAmount = money.Paise(repayment)
	if repaymentDate != nil {
		u.RepaymentDate = *repaymentDate
	}
	return &u, nil
}
