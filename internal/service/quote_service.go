package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/mapper"
	"github.com/steelstack/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuoteService manages quotes, their pricing and the deal linkage.
//
// Saving a quote without a deal creates one automatically so the pipeline
// always reflects outstanding quotes. The deal inherits the quote's
// attribution fields and its value tracks the quote total on every
// recalculation.
type QuoteService struct {
	quoteRepo       *repository.QuoteRepository
	contactRepo     *repository.ContactRepository
	productRepo     *repository.ProductRepository
	salespersonRepo *repository.SalespersonRepository
	db              *gorm.DB
	logger          *zap.Logger
}

func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	contactRepo *repository.ContactRepository,
	productRepo *repository.ProductRepository,
	salespersonRepo *repository.SalespersonRepository,
	db *gorm.DB,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:       quoteRepo,
		contactRepo:     contactRepo,
		productRepo:     productRepo,
		salespersonRepo: salespersonRepo,
		db:              db,
		logger:          logger,
	}
}

func (s *QuoteService) Create(ctx context.Context, req *domain.CreateQuoteRequest) (*domain.QuoteDTO, error) {
	var contact *domain.Contact
	if req.ContactID != nil {
		var err error
		contact, err = s.contactRepo.GetByID(ctx, *req.ContactID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: contact %d", ErrNotFound, *req.ContactID)
			}
			return nil, err
		}
	}

	quote := &domain.Quote{
		Title:           req.Title,
		Status:          domain.QuoteStatusDraft,
		DealID:          req.DealID,
		ContactID:       req.ContactID,
		CustomerName:    strings.TrimSpace(req.CustomerFirst + " " + req.CustomerLast),
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		SalespersonID:   req.SalespersonID,
		DiscountPercent: req.DiscountPercent,
		TaxPercent:      req.TaxPercent,
		QuoteDate:       req.QuoteDate,
		ExpiryDate:      req.ExpiryDate,
		UTMSource:       req.UTMSource,
		UTMMedium:       req.UTMMedium,
		UTMCampaign:     req.UTMCampaign,
		ReportedSource:  req.ReportedSource,
		Notes:           req.Notes,
		Terms:           req.Terms,
	}

	if contact != nil {
		if quote.CustomerName == "" {
			quote.CustomerName = contact.FullName()
		}
		if quote.CustomerEmail == "" {
			quote.CustomerEmail = contact.Email
		}
		if quote.CustomerPhone == "" {
			quote.CustomerPhone = contact.Phone
		}
		// A quote submitted without attribution inherits the contact's
		// first-touch values
		if quote.UTMSource == "" && quote.UTMMedium == "" && quote.UTMCampaign == "" {
			quote.UTMSource = contact.UTMSource
			quote.UTMMedium = contact.UTMMedium
			quote.UTMCampaign = contact.UTMCampaign
		}
	}

	if err := s.snapshotSalesperson(ctx, quote); err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	quote.Items = items
	quote.Recalculate()

	// Number allocation, deal creation, the quote insert and the contact
	// write-back commit or roll back as one unit
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quoteRepo := repository.NewQuoteRepository(tx)
		dealRepo := repository.NewDealRepository(tx)

		companyID, companyName, err := s.resolveCompany(ctx, repository.NewCompanyRepository(tx), req.CompanyID, req.NewCompanyName)
		if err != nil {
			return err
		}
		quote.CompanyID = companyID
		quote.CustomerCompany = companyName

		number, err := quoteRepo.NextQuoteNumber(ctx, time.Now().UTC().Year())
		if err != nil {
			return fmt.Errorf("failed to allocate quote number: %w", err)
		}
		quote.QuoteNumber = number

		if quote.DealID == nil {
			dealID, err := s.createDealForQuote(ctx, dealRepo, quote, req.ContactID)
			if err != nil {
				return err
			}
			quote.DealID = &dealID
		}

		if err := quoteRepo.Create(ctx, quote); err != nil {
			return fmt.Errorf("failed to create quote: %w", err)
		}

		if contact != nil {
			// First-touch write-back: the quote's attribution fills empty
			// contact attribution, never the other way around
			if !contact.HasAttribution() &&
				(quote.UTMSource != "" || quote.UTMMedium != "" || quote.UTMCampaign != "") {
				contact.UTMSource = quote.UTMSource
				contact.UTMMedium = quote.UTMMedium
				contact.UTMCampaign = quote.UTMCampaign
			}
			now := time.Now().UTC()
			contact.LastActivityDate = &now
			if err := repository.NewContactRepository(tx).Update(ctx, contact); err != nil {
				return fmt.Errorf("failed to update contact: %w", err)
			}
		}

		return s.syncDealValue(ctx, dealRepo, quote)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quote created",
		zap.Uint("quote_id", quote.ID),
		zap.String("quote_number", quote.QuoteNumber),
		zap.String("total", quote.Total.String()),
	)

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

func (s *QuoteService) GetByID(ctx context.Context, id uint) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

func (s *QuoteService) List(ctx context.Context, page, pageSize int, filters *repository.QuoteFilters) (*domain.PaginatedResponse, error) {
	quotes, total, err := s.quoteRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return paginate(mapper.ToQuoteDTOs(quotes), total, page, pageSize), nil
}

// Update replaces the quote header and line items, recomputes all derived
// money fields and persists the quote and the linked deal's value in one
// transaction. A failure leaves the previous totals, items and deal value
// intact.
func (s *QuoteService) Update(ctx context.Context, id uint, req *domain.UpdateQuoteRequest) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	quote.Title = req.Title
	quote.SalespersonID = req.SalespersonID
	quote.ContactID = req.ContactID
	quote.CompanyID = req.CompanyID
	quote.CustomerName = req.CustomerName
	quote.CustomerEmail = req.CustomerEmail
	quote.CustomerPhone = req.CustomerPhone
	quote.CustomerCompany = req.CustomerCompany
	quote.QuoteDate = req.QuoteDate
	quote.ExpiryDate = req.ExpiryDate
	quote.DiscountPercent = req.DiscountPercent
	quote.TaxPercent = req.TaxPercent
	quote.Notes = req.Notes
	quote.Terms = req.Terms

	// Saving a draft counts as sending it. Other statuses only change
	// through UpdateStatus.
	if quote.Status == domain.QuoteStatusDraft {
		quote.Status = domain.QuoteStatusSent
	}

	if err := s.snapshotSalesperson(ctx, quote); err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	quote.Items = items

	// Line totals round once per line; header totals round once per step.
	// An absolute discount amount overrides the percent and the percent is
	// back-computed for display.
	for i := range quote.Items {
		quote.Items[i].LineTotal = domain.LineTotal(
			quote.Items[i].Quantity, quote.Items[i].UnitPrice, quote.Items[i].DiscountPercent)
	}
	totals := domain.ComputeQuoteTotals(quote.Items, req.DiscountPercent, req.TaxPercent, req.DiscountAmount)
	quote.Subtotal = totals.Subtotal
	quote.DiscountPercent = totals.DiscountPercent
	quote.DiscountAmount = totals.DiscountAmount
	quote.TaxAmount = totals.TaxAmount
	quote.Total = totals.Total

	// The save and the deal value sync commit or roll back together
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewQuoteRepository(tx).Save(ctx, quote); err != nil {
			return fmt.Errorf("failed to save quote: %w", err)
		}
		return s.syncDealValue(ctx, repository.NewDealRepository(tx), quote)
	})
	if err != nil {
		return nil, err
	}

	reloaded, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload quote: %w", err)
	}
	dto := mapper.ToQuoteDTO(reloaded)
	return &dto, nil
}

// MarkSent transitions a draft quote to sent. Already-sent quotes are
// left alone.
func (s *QuoteService) MarkSent(ctx context.Context, id uint) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if quote.Status == domain.QuoteStatusDraft {
		quote.Status = domain.QuoteStatusSent
		if err := s.quoteRepo.Update(ctx, quote); err != nil {
			return nil, fmt.Errorf("failed to mark quote sent: %w", err)
		}
	}

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// UpdateStatus sets the quote status explicitly
func (s *QuoteService) UpdateStatus(ctx context.Context, id uint, status domain.QuoteStatus) (*domain.QuoteDTO, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	quote.Status = status
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote status: %w", err)
	}

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// Delete removes a quote and its line items. The linked deal survives.
func (s *QuoteService) Delete(ctx context.Context, id uint) error {
	if _, err := s.quoteRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.quoteRepo.Delete(ctx, id)
}

// GetModel returns the raw quote model, used by the PDF exporter
func (s *QuoteService) GetModel(ctx context.Context, id uint) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return quote, nil
}

// resolveCompany returns the company to attach, creating one when a new
// name is supplied. An existing company with the same name is reused.
// Runs against the caller's transaction so a created company rolls back
// with a failed quote.
func (s *QuoteService) resolveCompany(ctx context.Context, companyRepo *repository.CompanyRepository, companyID *uint, newName string) (*uint, string, error) {
	if companyID != nil {
		company, err := companyRepo.GetByID(ctx, *companyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", fmt.Errorf("%w: company %d", ErrNotFound, *companyID)
			}
			return nil, "", err
		}
		return companyID, company.Name, nil
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, "", nil
	}

	if existing, err := companyRepo.GetByName(ctx, newName); err == nil {
		return &existing.ID, existing.Name, nil
	}

	company := &domain.Company{Name: newName}
	if err := companyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, gerr := companyRepo.GetByName(ctx, newName); gerr == nil {
				return &existing.ID, existing.Name, nil
			}
		}
		return nil, "", fmt.Errorf("failed to create company: %w", err)
	}
	return &company.ID, company.Name, nil
}

// snapshotSalesperson copies the salesperson's contact details onto the
// quote so later edits to the salesperson record don't rewrite history
func (s *QuoteService) snapshotSalesperson(ctx context.Context, quote *domain.Quote) error {
	if quote.SalespersonID == nil {
		quote.SalespersonName = ""
		quote.SalespersonEmail = ""
		quote.SalespersonPhone = ""
		return nil
	}
	sp, err := s.salespersonRepo.GetByID(ctx, *quote.SalespersonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: salesperson %d", ErrNotFound, *quote.SalespersonID)
		}
		return err
	}
	quote.SalespersonName = sp.Name
	quote.SalespersonEmail = sp.Email
	quote.SalespersonPhone = sp.Phone
	return nil
}

// buildItems turns item requests into line items with product snapshots.
// A referenced product contributes its name, SKU and price as defaults;
// explicit request values win.
func (s *QuoteService) buildItems(ctx context.Context, reqs []domain.QuoteItemRequest) ([]domain.QuoteItem, error) {
	items := make([]domain.QuoteItem, 0, len(reqs))
	for i, req := range reqs {
		item := domain.QuoteItem{
			ProductID:       req.ProductID,
			ProductName:     req.ProductName,
			ProductSKU:      req.ProductSKU,
			Description:     req.Description,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			DiscountPercent: req.DiscountPercent,
			SortOrder:       req.SortOrder,
		}
		if item.SortOrder == 0 {
			item.SortOrder = i
		}
		if req.ProductID != nil {
			product, err := s.productRepo.GetByID(ctx, *req.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: product %d", ErrNotFound, *req.ProductID)
				}
				return nil, err
			}
			if item.ProductName == "" {
				item.ProductName = product.Name
			}
			if item.ProductSKU == "" {
				item.ProductSKU = product.SKU
			}
			if item.UnitPrice.IsZero() {
				item.UnitPrice = product.Price
			}
		}
		if item.ProductName == "" {
			return nil, fmt.Errorf("%w: line %d has no product name", ErrInvalidInput, i+1)
		}
		if item.Quantity.IsZero() {
			item.Quantity = decimal.NewFromInt(1)
		}
		items = append(items, item)
	}
	return items, nil
}

// createDealForQuote opens a pipeline deal mirroring the quote. Runs
// against the caller's transaction.
func (s *QuoteService) createDealForQuote(ctx context.Context, dealRepo *repository.DealRepository, quote *domain.Quote, contactID *uint) (uint, error) {
	name := quote.CustomerName
	if name == "" {
		name = quote.Title
	}
	deal := &domain.Deal{
		Name:           name,
		Value:          quote.Total,
		Stage:          domain.DealStageNew,
		SalespersonID:  quote.SalespersonID,
		CompanyID:      quote.CompanyID,
		UTMSource:      quote.UTMSource,
		UTMMedium:      quote.UTMMedium,
		UTMCampaign:    quote.UTMCampaign,
		ReportedSource: quote.ReportedSource,
	}
	if err := dealRepo.Create(ctx, deal); err != nil {
		return 0, fmt.Errorf("failed to create deal for quote: %w", err)
	}

	if contactID != nil {
		link := &domain.DealContact{
			DealID:    deal.ID,
			ContactID: *contactID,
			Role:      "primary",
		}
		if err := dealRepo.AddContact(ctx, link); err != nil {
			return 0, fmt.Errorf("failed to link contact to deal: %w", err)
		}
	}

	return deal.ID, nil
}

// syncDealValue keeps the linked deal's value equal to the quote total.
// Runs against the caller's transaction so the quote and its deal can
// never disagree.
func (s *QuoteService) syncDealValue(ctx context.Context, dealRepo *repository.DealRepository, quote *domain.Quote) error {
	if quote.DealID == nil {
		return nil
	}
	deal, err := dealRepo.GetByID(ctx, *quote.DealID)
	if err != nil {
		return fmt.Errorf("failed to load deal for value sync: %w", err)
	}
	if deal.Value.Equal(quote.Total) {
		return nil
	}
	deal.Value = quote.Total
	if err := dealRepo.Update(ctx, deal); err != nil {
		return fmt.Errorf("failed to sync deal value: %w", err)
	}
	return nil
}
