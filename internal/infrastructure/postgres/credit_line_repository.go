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

var _ repository.CreditLineRepository = (*CreditLineRepo)(nil)

// CreditLineRepo implementación de CreditLineRepository sobre PostgreSQL
// (usable con pool o tx). GetForUpdate solo serializa dentro de una
// transacción: SELECT FOR UPDATE retiene el lock de fila hasta el
// Commit/Rollback del TxRunner.
type CreditLineRepo struct {
	q Querier
}

// NewCreditLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditLineRepository(q Querier) *CreditLineRepo {
	return &CreditLineRepo{q: q}
}

const creditLineColumns = `id, dealership_id, total_limit, available_credit, interest_rate, interest_accrued, last_interest_date, status, created_at, updated_at`

// Create persiste una línea nueva. El constraint único sobre
// dealership_id garantiza el 1:1 aun bajo aperturas concurrentes.
func (r *CreditLineRepo) Create(l *entity.CreditLine) error {
	query := `
		INSERT INTO credit_lines (` + creditLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.DealershipID, int64(l.TotalLimit), int64(l.AvailableCredit),
		l.InterestRate, int64(l.InterestAccrued), nullableTime(l.LastInterestDate),
		l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCreditLine
		}
		return fmt.Errorf("insert credit line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID. nil si no existe.
func (r *CreditLineRepo) GetByID(id string) (*entity.CreditLine, error) {
	query := `SELECT ` + creditLineColumns + ` FROM credit_lines WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByDealership obtiene la línea del concesionario. nil si no tiene.
func (r *CreditLineRepo) GetByDealership(dealershipID string) (*entity.CreditLine, error) {
	query := `SELECT ` + creditLineColumns + ` FROM credit_lines WHERE dealership_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, dealershipID))
}

// GetForUpdate obtiene la línea bloqueando la fila (SELECT FOR UPDATE).
func (r *CreditLineRepo) GetForUpdate(id string) (*entity.CreditLine, error) {
	query := `SELECT ` + creditLineColumns + ` FROM credit_lines WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste los campos mutables del ledger.
func (r *CreditLineRepo) Update(l *entity.CreditLine) error {
	query := `
		UPDATE credit_lines
		SET available_credit = $2, interest_accrued = $3, last_interest_date = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, int64(l.AvailableCredit), int64(l.InterestAccrued),
		nullableTime(l.LastInterestDate), l.Status, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update credit line: %w", err)
	}
	return nil
}

// List lista líneas, opcionalmente por concesionario; limit <= 0 trae todas.
func (r *CreditLineRepo) List(dealershipID string, limit, offset int) ([]*entity.CreditLine, error) {
	query := `SELECT ` + creditLineColumns + ` FROM credit_lines`
	args := []any{}
	if dealershipID != "" {
		query += ` WHERE dealership_id = $1`
		args = append(args, dealershipID)
	}
	query += fmt.Sprintf(` ORDER BY created_at, id OFFSET $%d`, len(args)+1)
	args = append(args, offset)
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credit lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.CreditLine
	for rows.Next() {
		l, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *CreditLineRepo) scanOne(row pgx.Row) (*entity.CreditLine, error) {
	var l entity.CreditLine
	var totalLimit, available, accrued int64
	var lastInterest *time.Time
	err := row.Scan(
		&l.ID, &l.DealershipID, &totalLimit, &available, &l.InterestRate,
		&accrued, &lastInterest, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan credit line: %w", err)
	}
	l.TotalLimit = money.Paise(totalLimit)
	l.AvailableCredit = money.Paise(available)
	l.InterestAccrued = money.Paise(accrued)
	if lastInterest != nil {
		l.LastInterestDate = *lastInterest
	}
	return &l, nil
}

// nullableTime mapea el cero de time.Time a NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
