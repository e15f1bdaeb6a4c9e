package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/steelstack/crm-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uint) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Contact").
		Preload("Company").
		Preload("Deal").
		First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) GetByNumber(ctx context.Context, number string) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&quote, "quote_number = ?", number).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Save persists the quote header and replaces its line items in one
// transaction, so totals and items can never drift apart.
func (r *QuoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", quote.ID).
			Delete(&domain.QuoteItem{}).Error; err != nil {
			return err
		}
		for i := range quote.Items {
			quote.Items[i].ID = 0
			quote.Items[i].QuoteID = quote.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(quote).Error
	})
}

func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// Delete removes the quote; line items go with it via the cascade
func (r *QuoteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).
			Delete(&domain.QuoteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Quote{}, "id = ?", id).Error
	})
}

// QuoteFilters holds filters for listing quotes
type QuoteFilters struct {
	Search        string
	Status        *domain.QuoteStatus
	SalespersonID *uint
	DealID        *uint
}

func (r *QuoteRepository) List(ctx context.Context, page, pageSize int, filters *QuoteFilters) ([]domain.Quote, int64, error) {
	var quotes []domain.Quote
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Quote{})

	if filters != nil {
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			query = query.Where(
				"LOWER(quote_number) LIKE LOWER(?) OR LOWER(title) LIKE LOWER(?) OR LOWER(customer_name) LIKE LOWER(?)",
				pattern, pattern, pattern,
			)
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.SalespersonID != nil {
			query = query.Where("salesperson_id = ?", *filters.SalespersonID)
		}
		if filters.DealID != nil {
			query = query.Where("deal_id = ?", *filters.DealID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&quotes).Error

	return quotes, total, err
}

// ListRecent returns the newest quotes
func (r *QuoteRepository) ListRecent(ctx context.Context, limit int) ([]domain.Quote, error) {
	var quotes []domain.Quote
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&quotes).Error
	return quotes, err
}

func (r *QuoteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Quote{}).Count(&count).Error
	return count, err
}

// NextQuoteNumber atomically allocates the next quote number for the given
// year. Uses SELECT FOR UPDATE so concurrent saves never collide; if no
// sequence row exists for the year one is created starting at 1.
//
// Format: Q-YYYY-NNNN with the counter zero-padded to four digits.
func (r *QuoteRepository) NextQuoteNumber(ctx context.Context, year int) (string, error) {
	var nextSeq int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.QuoteSequence
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("year = ?", year).
			First(&seq)

		if result.Error == gorm.ErrRecordNotFound {
			seq = domain.QuoteSequence{
				Year:         year,
				LastSequence: 1,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create quote sequence: %w", err)
			}
			nextSeq = 1
		} else if result.Error != nil {
			return fmt.Errorf("failed to get quote sequence: %w", result.Error)
		} else {
			nextSeq = seq.LastSequence + 1
			if err := tx.Model(&seq).Updates(map[string]interface{}{
				"last_sequence": nextSeq,
				"updated_at":    time.Now(),
			}).Error; err != nil {
				return fmt.Errorf("failed to update quote sequence: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Q-%d-%04d", year, nextSeq), nil
}
