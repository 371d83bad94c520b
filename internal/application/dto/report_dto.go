package dto

import "github.com/shopspring/decimal"

// PortfolioSummaryResponse métricas agregadas para el dashboard mayorista
// (consumidor de solo lectura; nada aquí muta el ledger).
type PortfolioSummaryResponse struct {
	TotalDisbursed     decimal.Decimal `json:"total_disbursed"`
	TotalLimit         decimal.Decimal `json:"total_limit"`
	TotalAvailable     decimal.Decimal `json:"total_available"`
	OverallUtilization decimal.Decimal `json:"overall_utilization"`
	ActiveDealerships  int             `json:"active_dealerships"`
	UnitsInStock       int             `json:"units_in_stock"`
	PendingRepayments  decimal.Decimal `json:"pending_repayments"`
	SuspendedLines     int             `json:"suspended_lines"`
}
