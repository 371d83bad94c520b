package registry

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tu-usuario/floorplan-pro/internal/application/dto"
	"github.com/tu-usuario/floorplan-pro/internal/domain"
	"github.com/tu-usuario/floorplan-pro/internal/domain/entity"
	"github.com/tu-usuario/floorplan-pro/internal/domain/repository"
)

// DealershipUseCase registro de concesionarios: alta, transiciones de
// estado y adjunción de línea de crédito. Los concesionarios nunca se
// eliminan.
type DealershipUseCase struct {
	repo     repository.DealershipRepository
	validate *validator.Validate
}

// NewDealershipUseCase construye el caso de uso.
func NewDealershipUseCase(repo repository.DealershipRepository) *DealershipUseCase {
	return &DealershipUseCase{repo: repo, validate: validator.New()}
}

// Create da de alta un concesionario en estado Onboarding.
func (uc *DealershipUseCase) Create(in dto.CreateDealershipRequest) (*dto.DealershipResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	agreementDate, err := time.Parse("2006-01-02", in.AgreementDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	dealership := &entity.Dealership{
		ID:               uuid.New().String(),
		Name:             in.Name,
		PrincipalContact: in.PrincipalContact,
		Location:         in.Location,
		Status:           entity.DealershipStatusOnboarding,
		AgreementDate:    agreementDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(dealership); err != nil {
		return nil, err
	}
	return toDealershipResponse(dealership), nil
}

// Activate pasa el concesionario a Active (desde Onboarding o Suspended).
func (uc *DealershipUseCase) Activate(id string) (*dto.DealershipResponse, error) {
	return uc.transition(id, entity.DealershipStatusActive)
}

// Suspend pasa el concesionario a Suspended (solo desde Active).
func (uc *DealershipUseCase) Suspend(id string) (*dto.DealershipResponse, error) {
	return uc.transition(id, entity.DealershipStatusSuspended)
}

// Deactivate pasa el concesionario a Inactive (terminal).
func (uc *DealershipUseCase) Deactivate(id string) (*dto.DealershipResponse, error) {
	return uc.transition(id, entity.DealershipStatusInactive)
}

// transition aplica un cambio de estado puro contra la tabla de
// transiciones; rechaza con ErrInvalidTransition si el destino no es
// alcanzable desde el estado actual.
func (uc *DealershipUseCase) transition(id, next string) (*dto.DealershipResponse, error) {
	dealership, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dealership == nil {
		return nil, domain.ErrNotFound
	}
	if !dealership.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}
	dealership.Status = next
	dealership.UpdatedAt = time.Now()
	if err := uc.repo.Update(dealership); err != nil {
		return nil, err
	}
	return toDealershipResponse(dealership), nil
}

// AttachCreditLine adjunta la línea al concesionario. Cada concesionario
// admite a lo sumo una línea en toda su vida.
func (uc *DealershipUseCase) AttachCreditLine(dealershipID, creditLineID string) error {
	dealership, err := uc.repo.GetByID(dealershipID)
	if err != nil {
		return err
	}
	if dealership == nil {
		return domain.ErrNotFound
	}
	if dealership.CreditLineID != "" {
		return domain.ErrDuplicateCreditLine
	}
	dealership.CreditLineID = creditLineID
	dealership.UpdatedAt = time.Now()
	return uc.repo.Update(dealership)
}

// GetByID obtiene un concesionario por ID.
func (uc *DealershipUseCase) GetByID(id string) (*dto.DealershipResponse, error) {
	dealership, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dealership == nil {
		return nil, domain.ErrNotFound
	}
	return toDealershipResponse(dealership), nil
}

// List lista concesionarios con paginación.
func (uc *DealershipUseCase) List(limit, offset int) (*dto.DealershipListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DealershipResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDealershipResponse(d))
	}
	return &dto.DealershipListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toDealershipResponse(d *entity.Dealership) *dto.DealershipResponse {
	if d == nil {
		return nil
	}
	return &dto.DealershipResponse{
		ID:               d.ID,
		Name:             d.Name,
		PrincipalContact: d.PrincipalContact,
		Location:         d.Location,
		Status:           d.Status,
		AgreementDate:    d.AgreementDate,
		CreditLineID:     d.CreditLineID,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
