package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

// CompanyUseCase configuración de la empresa del usuario autenticado.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// GetSettings obtiene la empresa.
func (uc *CompanyUseCase) GetSettings(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// UpdateSettings aplica el parche. Solo owner y admin pueden modificar la empresa.
func (uc *CompanyUseCase) UpdateSettings(ctx context.Context, companyID, role string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if role != entity.RoleOwner && role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name", "es requerido")
		}
		company.Name = name
	}
	if in.Document != nil {
		company.Document = strings.TrimSpace(*in.Document)
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Currency != nil {
		company.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.Timezone != nil {
		if _, err := time.LoadLocation(*in.Timezone); err != nil {
			return nil, domain.Invalid("timezone", "zona horaria inválida")
		}
		company.Timezone = *in.Timezone
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Currency:  c.Currency,
		Timezone:  c.Timezone,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
