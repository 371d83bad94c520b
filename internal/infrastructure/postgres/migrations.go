package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations esquema del ledger. Idempotente (IF NOT EXISTS) para poder
// correrlo en cada arranque. Los montos van en BIGINT de paise; solo las
// tasas usan NUMERIC.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS dealerships (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		principal_contact TEXT NOT NULL DEFAULT '',
		location          TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL,
		agreement_date    TIMESTAMPTZ NOT NULL,
		credit_line_id    TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS credit_lines (
		id                 TEXT PRIMARY KEY,
		dealership_id      TEXT NOT NULL UNIQUE REFERENCES dealerships(id),
		total_limit        BIGINT NOT NULL,
		available_credit   BIGINT NOT NULL,
		interest_rate      NUMERIC(6,3) NOT NULL,
		interest_accrued   BIGINT NOT NULL DEFAULT 0,
		last_interest_date TIMESTAMPTZ,
		status             TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL,
		CONSTRAINT available_within_limit CHECK (available_credit >= 0 AND available_credit <= total_limit)
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_units (
		vin                TEXT PRIMARY KEY,
		dealership_id      TEXT NOT NULL REFERENCES dealerships(id),
		credit_line_id     TEXT NOT NULL REFERENCES credit_lines(id),
		oem_invoice_number TEXT NOT NULL DEFAULT '',
		make               TEXT NOT NULL DEFAULT '',
		model              TEXT NOT NULL DEFAULT '',
		year               INT NOT NULL DEFAULT 0,
		financed_amount    BIGINT NOT NULL,
		funding_date       TIMESTAMPTZ NOT NULL,
		status             TEXT NOT NULL,
		hypothecation      TEXT NOT NULL,
		repayment_date     TIMESTAMPTZ,
		repayment_amount   BIGINT NOT NULL DEFAULT 0,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_units_dealership ON inventory_units (dealership_id, status)`,
	`CREATE TABLE IF NOT EXISTS audits (
		id            TEXT PRIMARY KEY,
		dealership_id TEXT NOT NULL REFERENCES dealerships(id),
		audit_date    TIMESTAMPTZ NOT NULL,
		auditor_name  TEXT NOT NULL,
		status        TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS audit_vehicles (
		audit_id            TEXT NOT NULL REFERENCES audits(id),
		vin                 TEXT NOT NULL,
		verification_status TEXT NOT NULL,
		notes               TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (audit_id, vin)
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_events (
		id             TEXT PRIMARY KEY,
		credit_line_id TEXT NOT NULL REFERENCES credit_lines(id),
		event_type     TEXT NOT NULL,
		amount         BIGINT NOT NULL,
		vin            TEXT NOT NULL DEFAULT '',
		effective_date TIMESTAMPTZ NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_events_line ON ledger_events (credit_line_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'active',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
}

// RunMigrations aplica el esquema completo sobre el pool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migración %d: %w", i+1, err)
		}
	}
	return nil
}
