package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundUnitRequest financiación de una unidad nueva contra la línea del
// concesionario. El VIN debe ser bien formado (17 caracteres, sin I/O/Q)
// y el monto estrictamente positivo.
type FundUnitRequest struct {
	DealershipID     string          `json:"dealership_id" validate:"required,uuid4"`
	VIN              string          `json:"vin" validate:"required,vin"`
	OemInvoiceNumber string          `json:"oem_invoice_number" validate:"required"`
	Make             string          `json:"make" validate:"required"`
	Model            string          `json:"model" validate:"required"`
	Year             int             `json:"year" validate:"required,min=1990,max=2100"`
	FinancedAmount   decimal.Decimal `json:"financed_amount" validate:"required"`
}

// RepayUnitRequest repago de una unidad. RepaymentAmount es lo cobrado
// (puede incluir margen); la línea siempre libera el principal.
type RepayUnitRequest struct {
	RepaymentAmount decimal.Decimal `json:"repayment_amount" validate:"required"`
}

// InventoryUnitResponse representación externa de una unidad.
type InventoryUnitResponse struct {
	VIN              string          `json:"vin"`
	DealershipID     string          `json:"dealership_id"`
	CreditLineID     string          `json:"credit_line_id"`
	OemInvoiceNumber string          `json:"oem_invoice_number"`
	Make             string          `json:"make"`
	Model            string          `json:"model"`
	Year             int             `json:"year"`
	FinancedAmount   decimal.Decimal `json:"financed_amount"`
	FundingDate      time.Time       `json:"funding_date"`
	Status           string          `json:"status"`
	Hypothecation    string          `json:"hypothecation_status"`
	DaysInStock      int             `json:"days_in_stock"`
	RepaymentDate    *time.Time      `json:"repayment_date,omitempty"`
	RepaymentAmount  decimal.Decimal `json:"repayment_amount,omitempty"`
}

// InventoryListResponse listado paginado.
type InventoryListResponse struct {
	Items []InventoryUnitResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
