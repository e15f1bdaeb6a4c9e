package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/mapper"
	"github.com/steelstack/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompanyService struct {
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

func NewCompanyService(companyRepo *repository.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

func (s *CompanyService) Create(ctx context.Context, req *domain.CreateCompanyRequest) (*domain.CompanyDTO, error) {
	company := &domain.Company{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Website:    req.Website,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Notes:      req.Notes,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a company with this name already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.logger.Info("company created",
		zap.Uint("company_id", company.ID),
		zap.String("name", company.Name),
	)

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

func (s *CompanyService) GetByID(ctx context.Context, id uint) (*domain.CompanyDTO, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

func (s *CompanyService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
	companies, total, err := s.companyRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return paginate(mapper.ToCompanyDTOs(companies), total, page, pageSize), nil
}

func (s *CompanyService) Update(ctx context.Context, id uint, req *domain.UpdateCompanyRequest) (*domain.CompanyDTO, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	company.Name = req.Name
	company.Phone = req.Phone
	company.Email = req.Email
	company.Website = req.Website
	company.Address = req.Address
	company.City = req.City
	company.State = req.State
	company.PostalCode = req.PostalCode
	company.Notes = req.Notes

	if err := s.companyRepo.Update(ctx, company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a company with this name already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

// Delete removes the company. Contacts, deals and quotes that referenced
// it are detached, not deleted.
func (s *CompanyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.companyRepo.DeleteDetaching(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	s.logger.Info("company deleted", zap.Uint("company_id", id))
	return nil
}
