package repository

import (
	"context"

	"github.com/steelstack/crm-api/internal/domain"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *ContactRepository) GetByID(ctx context.Context, id uint) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).
		Preload("Company").
		First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetByEmail finds a contact by email address (case-insensitive)
func (r *ContactRepository) GetByEmail(ctx context.Context, email string) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *ContactRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Contact{}, "id = ?", id).Error
}

// ContactFilters holds filters for listing contacts
type ContactFilters struct {
	Search    string
	CompanyID *uint
	UTMSource string
	UTMMedium string
}

// List returns contacts with filters and pagination
func (r *ContactRepository) List(ctx context.Context, page, pageSize int, filters *ContactFilters) ([]domain.Contact, int64, error) {
	var contacts []domain.Contact
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Contact{})

	if filters != nil {
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			// LOWER/LIKE keeps the search portable between sqlite and postgres
			query = query.Where(
				"LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
				pattern, pattern, pattern,
			)
		}
		if filters.CompanyID != nil {
			query = query.Where("company_id = ?", *filters.CompanyID)
		}
		if filters.UTMSource != "" {
			query = query.Where("utm_source = ?", filters.UTMSource)
		}
		if filters.UTMMedium != "" {
			query = query.Where("utm_medium = ?", filters.UTMMedium)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Company").
		Order("last_name, first_name").
		Offset(offset).
		Limit(pageSize).
		Find(&contacts).Error

	return contacts, total, err
}

// ListUntouched returns contacts with no recorded activity, oldest first
func (r *ContactRepository) ListUntouched(ctx context.Context, limit int) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := r.db.WithContext(ctx).
		Where("last_activity_date IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Contact{}).Count(&count).Error
	return count, err
}

// ClearCompanyRefs detaches all contacts from a company inside the given
// transaction. Used when a company is deleted.
func (r *ContactRepository) ClearCompanyRefs(tx *gorm.DB, companyID uint) error {
	return tx.Model(&domain.Contact{}).
		Where("company_id = ?", companyID).
		Update("company_id", nil).Error
}
