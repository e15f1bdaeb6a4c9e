package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/steelstack/crm-api/internal/domain"
	"gorm.io/gorm"
)

type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

func (r *DealRepository) GetByID(ctx context.Context, id uint) (*domain.Deal, error) {
	var deal domain.Deal
	err := r.db.WithContext(ctx).
		Preload("Salesperson").
		Preload("Company").
		Preload("Contacts.Contact").
		First(&deal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *DealRepository) Update(ctx context.Context, deal *domain.Deal) error {
	return r.db.WithContext(ctx).Save(deal).Error
}

func (r *DealRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Deal{}, "id = ?", id).Error
}

// DealFilters holds filters for listing deals
type DealFilters struct {
	Search        string
	Stage         *domain.DealStage
	SalespersonID *uint
	CompanyID     *uint
}

func (r *DealRepository) List(ctx context.Context, page, pageSize int, filters *DealFilters) ([]domain.Deal, int64, error) {
	var deals []domain.Deal
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Deal{})

	if filters != nil {
		if filters.Search != "" {
			query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filters.Search+"%")
		}
		if filters.Stage != nil {
			query = query.Where("stage = ?", *filters.Stage)
		}
		if filters.SalespersonID != nil {
			query = query.Where("salesperson_id = ?", *filters.SalespersonID)
		}
		if filters.CompanyID != nil {
			query = query.Where("company_id = ?", *filters.CompanyID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Salesperson").
		Preload("Company").
		Order("updated_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&deals).Error

	return deals, total, err
}

// ListByStage returns all deals in a stage, newest activity first.
// Used to build the kanban board.
func (r *DealRepository) ListByStage(ctx context.Context, stage domain.DealStage) ([]domain.Deal, error) {
	var deals []domain.Deal
	err := r.db.WithContext(ctx).
		Preload("Salesperson").
		Preload("Company").
		Where("stage = ?", stage).
		Order("updated_at DESC").
		Find(&deals).Error
	return deals, err
}

// UpdateStage applies a stage transition and records it in the history
// table within a single transaction. The close bookkeeping (reason and
// actual close date) must already be set on the updates map by the caller.
func (r *DealRepository) UpdateStage(ctx context.Context, dealID uint, updates map[string]interface{}, history *domain.DealStageHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Deal{}).
			Where("id = ?", dealID).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(history).Error
	})
}

// CreateHistory appends a stage history record outside a transition
func (r *DealRepository) CreateHistory(ctx context.Context, history *domain.DealStageHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// GetStageHistory returns the transition log for a deal, oldest first
func (r *DealRepository) GetStageHistory(ctx context.Context, dealID uint) ([]domain.DealStageHistory, error) {
	var history []domain.DealStageHistory
	err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("changed_at ASC, id ASC").
		Find(&history).Error
	return history, err
}

// AddContact links a contact to a deal
func (r *DealRepository) AddContact(ctx context.Context, link *domain.DealContact) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// RemoveContact unlinks a contact from a deal
func (r *DealRepository) RemoveContact(ctx context.Context, dealID, contactID uint) error {
	return r.db.WithContext(ctx).
		Where("deal_id = ? AND contact_id = ?", dealID, contactID).
		Delete(&domain.DealContact{}).Error
}

func (r *DealRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Deal{}).Count(&count).Error
	return count, err
}

// StageAggregate is deal count and summed value for one stage
type StageAggregate struct {
	Stage      domain.DealStage
	DealCount  int64
	TotalValue decimal.Decimal
}

// AggregateByStage returns count and total value per stage
func (r *DealRepository) AggregateByStage(ctx context.Context) ([]StageAggregate, error) {
	var rows []StageAggregate
	err := r.db.WithContext(ctx).Model(&domain.Deal{}).
		Select("stage, COUNT(*) AS deal_count, COALESCE(SUM(value), 0) AS total_value").
		Group("stage").
		Find(&rows).Error
	return rows, err
}
