package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/mapper"
	"github.com/steelstack/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContactService struct {
	contactRepo *repository.ContactRepository
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

func NewContactService(
	contactRepo *repository.ContactRepository,
	companyRepo *repository.CompanyRepository,
	logger *zap.Logger,
) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

func (s *ContactService) Create(ctx context.Context, req *domain.CreateContactRequest) (*domain.ContactDTO, error) {
	if req.CompanyID != nil {
		if _, err := s.companyRepo.GetByID(ctx, *req.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: company %d", ErrNotFound, *req.CompanyID)
			}
			return nil, err
		}
	}

	contact := &domain.Contact{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyID:   req.CompanyID,
		Salesperson: req.Salesperson,
		UTMSource:   req.UTMSource,
		UTMMedium:   req.UTMMedium,
		UTMCampaign: req.UTMCampaign,
		UTMTerm:     req.UTMTerm,
		UTMContent:  req.UTMContent,
		Notes:       req.Notes,
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a contact with this email already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.logger.Info("contact created",
		zap.Uint("contact_id", contact.ID),
		zap.String("email", contact.Email),
	)

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

func (s *ContactService) GetByID(ctx context.Context, id uint) (*domain.ContactDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

func (s *ContactService) List(ctx context.Context, page, pageSize int, filters *repository.ContactFilters) (*domain.PaginatedResponse, error) {
	contacts, total, err := s.contactRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return paginate(mapper.ToContactDTOs(contacts), total, page, pageSize), nil
}

// Update edits contact fields. Attribution follows first-touch: UTM fields
// already recorded on the contact are kept even if the request carries new
// values.
func (s *ContactService) Update(ctx context.Context, id uint, req *domain.UpdateContactRequest) (*domain.ContactDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.CompanyID != nil {
		if _, err := s.companyRepo.GetByID(ctx, *req.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: company %d", ErrNotFound, *req.CompanyID)
			}
			return nil, err
		}
	}

	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = req.Email
	contact.Phone = req.Phone
	contact.CompanyID = req.CompanyID
	contact.Salesperson = req.Salesperson
	contact.Notes = req.Notes
	if !contact.HasAttribution() {
		contact.UTMSource = req.UTMSource
		contact.UTMMedium = req.UTMMedium
		contact.UTMCampaign = req.UTMCampaign
		contact.UTMTerm = req.UTMTerm
		contact.UTMContent = req.UTMContent
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a contact with this email already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

func (s *ContactService) Delete(ctx context.Context, id uint) error {
	if _, err := s.contactRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.contactRepo.Delete(ctx, id)
}

// TouchActivity stamps the contact's last activity date
func (s *ContactService) TouchActivity(ctx context.Context, id uint) error {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	now := time.Now().UTC()
	contact.LastActivityDate = &now
	return s.contactRepo.Update(ctx, contact)
}

func paginate(data interface{}, total int64, page, pageSize int) *domain.PaginatedResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &domain.PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
