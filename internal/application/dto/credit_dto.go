package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenCreditLineRequest apertura de línea de crédito revolvente.
// Montos en rupias (decimales de unidad mayor); el ledger los convierte a
// paise en el borde.
type OpenCreditLineRequest struct {
	DealershipID string          `json:"dealership_id" validate:"required,uuid4"`
	TotalLimit   decimal.Decimal `json:"total_limit" validate:"required"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"required"`
}

// CreditLineResponse representación externa de una línea.
type CreditLineResponse struct {
	ID               string          `json:"id"`
	DealershipID     string          `json:"dealership_id"`
	TotalLimit       decimal.Decimal `json:"total_limit"`
	AvailableCredit  decimal.Decimal `json:"available_credit"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	InterestAccrued  decimal.Decimal `json:"interest_accrued"`
	LastInterestDate *time.Time      `json:"last_interest_date,omitempty"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CreditLineListResponse listado paginado.
type CreditLineListResponse struct {
	Items []CreditLineResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// UtilizationResponse fracción del límite dispuesta.
type UtilizationResponse struct {
	CreditLineID string          `json:"credit_line_id"`
	Utilization  decimal.Decimal `json:"utilization"`
}

// AccrueInterestRequest devengo de interés simple hasta una fecha.
type AccrueInterestRequest struct {
	AsOfDate string `json:"as_of_date" validate:"required,datetime=2006-01-02"`
}

// LedgerEventResponse entrada del log append-only.
type LedgerEventResponse struct {
	ID            string          `json:"id"`
	CreditLineID  string          `json:"credit_line_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	VIN           string          `json:"vin,omitempty"`
	EffectiveDate time.Time       `json:"effective_date"`
	CreatedAt     time.Time       `json:"created_at"`
}
