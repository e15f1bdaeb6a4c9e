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

type SalespersonService struct {
	salespersonRepo *repository.SalespersonRepository
	logger          *zap.Logger
}

func NewSalespersonService(salespersonRepo *repository.SalespersonRepository, logger *zap.Logger) *SalespersonService {
	return &SalespersonService{
		salespersonRepo: salespersonRepo,
		logger:          logger,
	}
}

func (s *SalespersonService) Create(ctx context.Context, req *domain.CreateSalespersonRequest) (*domain.SalespersonDTO, error) {
	sp := &domain.Salesperson{
		Name:      req.Name,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}

	if err := s.salespersonRepo.Create(ctx, sp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a salesperson with this name already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create salesperson: %w", err)
	}

	dto := mapper.ToSalespersonDTO(sp)
	return &dto, nil
}

func (s *SalespersonService) GetByID(ctx context.Context, id uint) (*domain.SalespersonDTO, error) {
	sp, err := s.salespersonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToSalespersonDTO(sp)
	return &dto, nil
}

func (s *SalespersonService) List(ctx context.Context) ([]domain.SalespersonDTO, error) {
	people, err := s.salespersonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list salespeople: %w", err)
	}
	return mapper.ToSalespersonDTOs(people), nil
}

// Update edits salesperson details. Quotes keep their snapshots, so
// historical documents are unaffected.
func (s *SalespersonService) Update(ctx context.Context, id uint, req *domain.UpdateSalespersonRequest) (*domain.SalespersonDTO, error) {
	sp, err := s.salespersonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sp.Name = req.Name
	sp.FirstName = req.FirstName
	sp.LastName = req.LastName
	sp.Email = req.Email
	sp.Phone = req.Phone

	if err := s.salespersonRepo.Update(ctx, sp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a salesperson with this name already exists", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update salesperson: %w", err)
	}

	dto := mapper.ToSalespersonDTO(sp)
	return &dto, nil
}

// Delete removes the salesperson; deals and quotes that referenced them
// are detached
func (s *SalespersonService) Delete(ctx context.Context, id uint) error {
	if _, err := s.salespersonRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.salespersonRepo.DeleteDetaching(ctx, id); err != nil {
		return fmt.Errorf("failed to delete salesperson: %w", err)
	}

	s.logger.Info("salesperson deleted", zap.Uint("salesperson_id", id))
	return nil
}
