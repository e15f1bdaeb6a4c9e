package repository

import (
	"context"

	"github.com/steelstack/crm-api/internal/domain"
	"gorm.io/gorm"
)

type SalespersonRepository struct {
	db *gorm.DB
}

func NewSalespersonRepository(db *gorm.DB) *SalespersonRepository {
	return &SalespersonRepository{db: db}
}

func (r *SalespersonRepository) Create(ctx context.Context, sp *domain.Salesperson) error {
	return r.db.WithContext(ctx).Create(sp).Error
}

func (r *SalespersonRepository) GetByID(ctx context.Context, id uint) (*domain.Salesperson, error) {
	var sp domain.Salesperson
	err := r.db.WithContext(ctx).First(&sp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *SalespersonRepository) GetByName(ctx context.Context, name string) (*domain.Salesperson, error) {
	var sp domain.Salesperson
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&sp).Error
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *SalespersonRepository) Update(ctx context.Context, sp *domain.Salesperson) error {
	return r.db.WithContext(ctx).Save(sp).Error
}

func (r *SalespersonRepository) List(ctx context.Context) ([]domain.Salesperson, error) {
	var people []domain.Salesperson
	err := r.db.WithContext(ctx).Order("name").Find(&people).Error
	return people, err
}

// DeleteDetaching removes the salesperson and nulls out deal and quote
// references in one transaction
func (r *SalespersonRepository) DeleteDetaching(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Deal{}).
			Where("salesperson_id = ?", id).
			Update("salesperson_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Quote{}).
			Where("salesperson_id = ?", id).
			Update("salesperson_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Salesperson{}, "id = ?", id).Error
	})
}
