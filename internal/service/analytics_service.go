package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/mapper"
	"github.com/steelstack/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AnalyticsService aggregates dashboard and attribution reporting
type AnalyticsService struct {
	dealRepo    *repository.DealRepository
	contactRepo *repository.ContactRepository
	quoteRepo   *repository.QuoteRepository
	db          *gorm.DB
	logger      *zap.Logger
}

func NewAnalyticsService(
	dealRepo *repository.DealRepository,
	contactRepo *repository.ContactRepository,
	quoteRepo *repository.QuoteRepository,
	db *gorm.DB,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		dealRepo:    dealRepo,
		contactRepo: contactRepo,
		quoteRepo:   quoteRepo,
		db:          db,
		logger:      logger,
	}
}

// Dashboard builds the headline numbers for the landing view
func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.DashboardDTO, error) {
	contactCount, err := s.contactRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	dealCount, err := s.dealRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count deals: %w", err)
	}
	quoteCount, err := s.quoteRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	aggregates, err := s.dealRepo.AggregateByStage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate deals: %w", err)
	}

	dto := &domain.DashboardDTO{
		ContactCount:  contactCount,
		DealCount:     dealCount,
		QuoteCount:    quoteCount,
		PipelineValue: decimal.Zero,
		WonValue:      decimal.Zero,
	}
	for _, agg := range aggregates {
		dto.StageBreakdown = append(dto.StageBreakdown, domain.StageBreakdownDTO{
			Stage:      agg.Stage,
			DealCount:  agg.DealCount,
			TotalValue: agg.TotalValue,
		})
		switch {
		case agg.Stage == domain.DealStageClosedWon:
			dto.WonValue = dto.WonValue.Add(agg.TotalValue)
		case !agg.Stage.IsClosed():
			dto.OpenDealCount += agg.DealCount
			dto.PipelineValue = dto.PipelineValue.Add(agg.TotalValue)
		}
	}

	untouched, err := s.contactRepo.ListUntouched(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list untouched leads: %w", err)
	}
	dto.UntouchedLeads = mapper.ToContactDTOs(untouched)

	recent, err := s.quoteRepo.ListRecent(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent quotes: %w", err)
	}
	dto.RecentQuotes = mapper.ToQuoteDTOs(recent)

	return dto, nil
}

// DealsByMonth buckets won deals by month and attribution medium.
// The month expression works on both sqlite and postgres builds of the
// schema because values are bucketed in Go, not SQL.
func (s *AnalyticsService) DealsByMonth(ctx context.Context) ([]domain.MonthlyBreakdownDTO, error) {
	var deals []domain.Deal
	err := s.db.WithContext(ctx).
		Where("stage = ? AND actual_close_date IS NOT NULL", domain.DealStageClosedWon).
		Order("actual_close_date ASC").
		Find(&deals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load won deals: %w", err)
	}

	type key struct {
		month  string
		medium string
	}
	buckets := make(map[key]*domain.MonthlyBreakdownDTO)
	var order []key
	for i := range deals {
		medium := deals[i].UTMMedium
		if medium == "" {
			medium = "direct"
		}
		k := key{
			month:  deals[i].ActualCloseDate.Format("2006-01"),
			medium: medium,
		}
		bucket, ok := buckets[k]
		if !ok {
			bucket = &domain.MonthlyBreakdownDTO{
				Month:      k.month,
				Medium:     k.medium,
				TotalValue: decimal.Zero,
			}
			buckets[k] = bucket
			order = append(order, k)
		}
		bucket.Count++
		bucket.TotalValue = bucket.TotalValue.Add(deals[i].Value)
	}

	result := make([]domain.MonthlyBreakdownDTO, 0, len(order))
	for _, k := range order {
		result = append(result, *buckets[k])
	}
	return result, nil
}

// LeadsByMonth buckets contacts by creation month and attribution source
func (s *AnalyticsService) LeadsByMonth(ctx context.Context) ([]domain.LeadBreakdownDTO, error) {
	var contacts []domain.Contact
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	type key struct {
		month  string
		source string
	}
	buckets := make(map[key]*domain.LeadBreakdownDTO)
	var order []key
	for i := range contacts {
		source := contacts[i].UTMSource
		if source == "" {
			source = "direct"
		}
		k := key{
			month:  contacts[i].CreatedAt.Format("2006-01"),
			source: source,
		}
		bucket, ok := buckets[k]
		if !ok {
			bucket = &domain.LeadBreakdownDTO{
				Month:  k.month,
				Source: k.source,
			}
			buckets[k] = bucket
			order = append(order, k)
		}
		bucket.Count++
	}

	result := make([]domain.LeadBreakdownDTO, 0, len(order))
	for _, k := range order {
		result = append(result, *buckets[k])
	}
	return result, nil
}
