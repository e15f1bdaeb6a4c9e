package repository

import (
	"context"

	"github.com/steelstack/crm-api/internal/domain"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetByName finds a company by exact name (case-insensitive)
func (r *CompanyRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *CompanyRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.Company, int64, error) {
	var companies []domain.Company
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Company{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name").
		Offset(offset).
		Limit(pageSize).
		Find(&companies).Error

	return companies, total, err
}

// DeleteDetaching removes the company and nulls out every reference to it
// from contacts, deals and quotes in one transaction. Records that pointed
// at the company survive.
func (r *CompanyRepository) DeleteDetaching(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Contact{}).
			Where("company_id = ?", id).
			Update("company_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Deal{}).
			Where("company_id = ?", id).
			Update("company_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Quote{}).
			Where("company_id = ?", id).
			Update("company_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Company{}, "id = ?", id).Error
	})
}
