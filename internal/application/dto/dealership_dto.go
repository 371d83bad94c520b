package dto

import "time"

// CreateDealershipRequest alta de concesionario (entra en Onboarding).
type CreateDealershipRequest struct {
	Name             string `json:"name" validate:"required,min=2"`
	PrincipalContact string `json:"principal_contact" validate:"required"`
	Location         string `json:"location" validate:"required"`
	AgreementDate    string `json:"agreement_date" validate:"required,datetime=2006-01-02"`
}

// DealershipResponse representación externa de un concesionario.
type DealershipResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	PrincipalContact string    `json:"principal_contact"`
	Location         string    `json:"location"`
	Status           string    `json:"status"`
	AgreementDate    time.Time `json:"agreement_date"`
	CreditLineID     string    `json:"credit_line_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DealershipListResponse listado paginado.
type DealershipListResponse struct {
	Items []DealershipResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
