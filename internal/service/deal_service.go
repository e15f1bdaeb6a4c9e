package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/steelstack/crm-api/internal/auth"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/mapper"
	"github.com/steelstack/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// pipelineOrder is the kanban column order
var pipelineOrder = []domain.DealStage{
	domain.DealStageNew,
	domain.DealStageProposal,
	domain.DealStageNegotiation,
	domain.DealStageClosedWon,
	domain.DealStageClosedLost,
}

type DealService struct {
	dealRepo    *repository.DealRepository
	contactRepo *repository.ContactRepository
	logger      *zap.Logger
}

func NewDealService(
	dealRepo *repository.DealRepository,
	contactRepo *repository.ContactRepository,
	logger *zap.Logger,
) *DealService {
	return &DealService{
		dealRepo:    dealRepo,
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (s *DealService) Create(ctx context.Context, req *domain.CreateDealRequest) (*domain.DealDTO, error) {
	stage := req.Stage
	if stage == "" {
		stage = domain.DealStageNew
	}
	if !stage.IsValid() {
		return nil, ErrInvalidStage
	}
	if stage.IsClosed() && strings.TrimSpace(req.CloseReason) == "" {
		return nil, ErrCloseReasonRequired
	}

	deal := &domain.Deal{
		Name:              req.Name,
		Value:             req.Value,
		Stage:             stage,
		SalespersonID:     req.SalespersonID,
		CompanyID:         req.CompanyID,
		UTMSource:         req.UTMSource,
		UTMMedium:         req.UTMMedium,
		UTMCampaign:       req.UTMCampaign,
		ReportedSource:    req.ReportedSource,
		CloseReason:       strings.TrimSpace(req.CloseReason),
		ExpectedCloseDate: req.ExpectedCloseDate,
		Notes:             req.Notes,
	}
	if stage.IsClosed() {
		now := time.Now().UTC()
		deal.ActualCloseDate = &now
	}

	if err := s.dealRepo.Create(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	if req.ContactID != nil {
		link := &domain.DealContact{
			DealID:    deal.ID,
			ContactID: *req.ContactID,
			Role:      "primary",
		}
		if err := s.dealRepo.AddContact(ctx, link); err != nil {
			s.logger.Warn("failed to link contact to deal", zap.Error(err))
		}
	}

	s.recordHistory(ctx, deal.ID, nil, stage, deal.CloseReason)

	s.logger.Info("deal created",
		zap.Uint("deal_id", deal.ID),
		zap.String("stage", string(stage)),
	)

	reloaded, err := s.dealRepo.GetByID(ctx, deal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload deal: %w", err)
	}
	dto := mapper.ToDealDTO(reloaded)
	return &dto, nil
}

func (s *DealService) GetByID(ctx context.Context, id uint) (*domain.DealDTO, error) {
	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToDealDTO(deal)
	return &dto, nil
}

func (s *DealService) List(ctx context.Context, page, pageSize int, filters *repository.DealFilters) (*domain.PaginatedResponse, error) {
	deals, total, err := s.dealRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return paginate(mapper.ToDealDTOs(deals), total, page, pageSize), nil
}

// Pipeline returns the kanban board: one column per stage, in pipeline order
func (s *DealService) Pipeline(ctx context.Context) ([]domain.PipelineColumnDTO, error) {
	columns := make([]domain.PipelineColumnDTO, 0, len(pipelineOrder))
	for _, stage := range pipelineOrder {
		deals, err := s.dealRepo.ListByStage(ctx, stage)
		if err != nil {
			return nil, fmt.Errorf("failed to load stage %s: %w", stage, err)
		}
		col := domain.PipelineColumnDTO{
			Stage: stage,
			Deals: mapper.ToDealDTOs(deals),
		}
		for i := range deals {
			col.TotalValue = col.TotalValue.Add(deals[i].Value)
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// Update edits deal fields other than the stage. Stage changes go through
// UpdateStage so the close-reason gate cannot be bypassed.
func (s *DealService) Update(ctx context.Context, id uint, req *domain.UpdateDealRequest) (*domain.DealDTO, error) {
	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	deal.Name = req.Name
	deal.Value = req.Value
	deal.SalespersonID = req.SalespersonID
	deal.CompanyID = req.CompanyID
	deal.UTMSource = req.UTMSource
	deal.UTMMedium = req.UTMMedium
	deal.UTMCampaign = req.UTMCampaign
	deal.ReportedSource = req.ReportedSource
	deal.ExpectedCloseDate = req.ExpectedCloseDate
	deal.Notes = req.Notes
	if req.SourceVerified != nil {
		deal.SourceVerified = *req.SourceVerified
	}
	if req.CloseReason != nil {
		deal.CloseReason = strings.TrimSpace(*req.CloseReason)
	}

	if err := s.dealRepo.Update(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}

	dto := mapper.ToDealDTO(deal)
	return &dto, nil
}

// UpdateStage moves a deal to another stage. Any stage can move to any
// other, with one gate: entering closed_won or closed_lost requires a
// non-empty close reason in the same request. The stage change, close
// bookkeeping and history record are applied atomically; a rejected
// transition leaves the deal untouched.
//
// Entering a closed stage stamps the actual close date. Leaving a closed
// stage clears the date but keeps the close reason for later reporting.
func (s *DealService) UpdateStage(ctx context.Context, id uint, req *domain.UpdateDealStageRequest) (*domain.DealDTO, error) {
	if !req.Stage.IsValid() {
		return nil, ErrInvalidStage
	}

	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reason := strings.TrimSpace(req.CloseReason)
	if req.Stage.IsClosed() && reason == "" {
		return nil, ErrCloseReasonRequired
	}

	updates := map[string]interface{}{
		"stage":      req.Stage,
		"updated_at": time.Now().UTC(),
	}
	if req.Stage.IsClosed() {
		now := time.Now().UTC()
		updates["close_reason"] = reason
		updates["actual_close_date"] = &now
	} else if deal.Stage.IsClosed() {
		// Reopening: drop the close date, keep the reason
		updates["actual_close_date"] = nil
	}

	fromStage := deal.Stage
	history := &domain.DealStageHistory{
		DealID:    id,
		FromStage: &fromStage,
		ToStage:   req.Stage,
		Reason:    reason,
		ChangedAt: time.Now().UTC(),
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		history.ChangedByID = userCtx.UserID
		history.ChangedBy = userCtx.DisplayName
	}

	if err := s.dealRepo.UpdateStage(ctx, id, updates, history); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update deal stage: %w", err)
	}

	s.logger.Info("deal stage changed",
		zap.Uint("deal_id", id),
		zap.String("from", string(fromStage)),
		zap.String("to", string(req.Stage)),
	)

	if req.Stage == domain.DealStageClosedWon {
		s.rollUpWonDeal(ctx, deal)
	}

	reloaded, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload deal: %w", err)
	}
	dto := mapper.ToDealDTO(reloaded)
	return &dto, nil
}

// rollUpWonDeal mirrors the won deal's value and close date onto its
// linked contacts for reporting. Best effort, never fails the transition.
func (s *DealService) rollUpWonDeal(ctx context.Context, deal *domain.Deal) {
	now := time.Now().UTC()
	for i := range deal.Contacts {
		contact, err := s.contactRepo.GetByID(ctx, deal.Contacts[i].ContactID)
		if err != nil {
			continue
		}
		contact.DealValue = contact.DealValue.Add(deal.Value)
		contact.DealClosedDate = &now
		if err := s.contactRepo.Update(ctx, contact); err != nil {
			s.logger.Warn("failed to roll up won deal onto contact",
				zap.Uint("contact_id", contact.ID),
				zap.Error(err),
			)
		}
	}
}

// LinkContact attaches a contact to the deal as an additional stakeholder
func (s *DealService) LinkContact(ctx context.Context, dealID, contactID uint) error {
	if _, err := s.dealRepo.GetByID(ctx, dealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if _, err := s.contactRepo.GetByID(ctx, contactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: contact %d", ErrNotFound, contactID)
		}
		return err
	}

	link := &domain.DealContact{
		DealID:    dealID,
		ContactID: contactID,
		Role:      "primary",
	}
	if err := s.dealRepo.AddContact(ctx, link); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: contact already linked to this deal", ErrConflict)
		}
		return fmt.Errorf("failed to link contact: %w", err)
	}
	return nil
}

// UnlinkContact removes a contact link from the deal
func (s *DealService) UnlinkContact(ctx context.Context, dealID, contactID uint) error {
	if _, err := s.dealRepo.GetByID(ctx, dealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.dealRepo.RemoveContact(ctx, dealID, contactID)
}

// StageHistory returns a deal's transition log
func (s *DealService) StageHistory(ctx context.Context, id uint) ([]domain.DealStageHistoryDTO, error) {
	if _, err := s.dealRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	history, err := s.dealRepo.GetStageHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage history: %w", err)
	}
	return mapper.ToDealStageHistoryDTOs(history), nil
}

func (s *DealService) Delete(ctx context.Context, id uint) error {
	if _, err := s.dealRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.dealRepo.Delete(ctx, id)
}

func (s *DealService) recordHistory(ctx context.Context, dealID uint, from *domain.DealStage, to domain.DealStage, reason string) {
	history := &domain.DealStageHistory{
		DealID:    dealID,
		FromStage: from,
		ToStage:   to,
		Reason:    reason,
		ChangedAt: time.Now().UTC(),
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		history.ChangedByID = userCtx.UserID
		history.ChangedBy = userCtx.DisplayName
	}
	if err := s.dealRepo.CreateHistory(ctx, history); err != nil {
		s.logger.Warn("failed to record stage history", zap.Error(err))
	}
}
