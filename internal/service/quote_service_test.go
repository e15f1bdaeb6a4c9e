package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/repository"
	"github.com/steelstack/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newQuoteService(t *testing.T) (*QuoteService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewQuoteService(
		repository.NewQuoteRepository(db),
		repository.NewContactRepository(db),
		repository.NewProductRepository(db),
		repository.NewSalespersonRepository(db),
		db,
		zap.NewNop(),
	)
	return svc, db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestQuoteCreate_NumberFormatAndSequence(t *testing.T) {
	svc, _ := newQuoteService(t)
	ctx := context.Background()
	year := time.Now().UTC().Year()

	first, err := svc.Create(ctx, &domain.CreateQuoteRequest{Title: "First"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Q-%d-0001", year), first.QuoteNumber)

	second, err := svc.Create(ctx, &domain.CreateQuoteRequest{Title: "Second"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Q-%d-0002", year), second.QuoteNumber)
}

func TestQuoteCreate_ComputesTotalsFromItems(t *testing.T) {
	svc, _ := newQuoteService(t)

	quote, err := svc.Create(context.Background(), &domain.CreateQuoteRequest{
		Title:      "Racking",
		TaxPercent: dec("10"),
		Items: []domain.QuoteItemRequest{
			{ProductName: "Pallet rack", Quantity: dec("4"), UnitPrice: dec("250.00")},
			{ProductName: "Install", Quantity: dec("1"), UnitPrice: dec("300.00"), DiscountPercent: dec("50")},
		},
	})
	require.NoError(t, err)

	assert.True(t, dec("1150").Equal(quote.Subtotal), "subtotal %s", quote.Subtotal)
	assert.True(t, dec("115").Equal(quote.TaxAmount))
	assert.True(t, dec("1265").Equal(quote.Total))
	require.Len(t, quote.Items, 2)
	assert.True(t, dec("150").Equal(quote.Items[1].LineTotal))
}

func TestQuoteCreate_SnapshotsProductDetails(t *testing.T) {
	svc, db := newQuoteService(t)
	product := testutil.CreateTestProduct(t, db, "Cantilever rack", "CR-100", "499.99")

	quote, err := svc.Create(context.Background(), &domain.CreateQuoteRequest{
		Title: "Snapshot",
		Items: []domain.QuoteItemRequest{{ProductID: &product.ID, Quantity: dec("2")}},
	})
	require.NoError(t, err)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, "Cantilever rack", quote.Items[0].ProductName)
	assert.Equal(t, "CR-100", quote.Items[0].ProductSKU)
	assert.True(t, dec("499.99").Equal(quote.Items[0].UnitPrice))

	// later product edits must not touch the existing quote
	product.Price = dec("999.99")
	product.Name = "Renamed"
	require.NoError(t, db.Save(product).Error)

	reloaded, err := svc.GetByID(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cantilever rack", reloaded.Items[0].ProductName)
	assert.True(t, dec("499.99").Equal(reloaded.Items[0].UnitPrice))
}

func TestQuoteCreate_AutoCreatesDealWithQuoteValue(t *testing.T) {
	svc, db := newQuoteService(t)

	quote, err := svc.Create(context.Background(), &domain.CreateQuoteRequest{
		Title:     "No deal yet",
		UTMSource: "google",
		UTMMedium: "cpc",
		Items: []domain.QuoteItemRequest{
			{ProductName: "Shelving", Quantity: dec("1"), UnitPrice: dec("750.00")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, quote.DealID)

	var deal domain.Deal
	require.NoError(t, db.First(&deal, *quote.DealID).Error)
	assert.Equal(t, domain.DealStageNew, deal.Stage)
	assert.True(t, dec("750.00").Equal(deal.Value))
	assert.Equal(t, "google", deal.UTMSource)
	assert.Equal(t, "cpc", deal.UTMMedium)
}

func TestQuoteCreate_InheritsContactAttribution(t *testing.T) {
	svc, db := newQuoteService(t)
	contact := testutil.CreateTestContact(t, db, "attr@example.com")
	contact.UTMSource = "newsletter"
	contact.UTMMedium = "email"
	require.NoError(t, db.Save(contact).Error)

	quote, err := svc.Create(context.Background(), &domain.CreateQuoteRequest{
		Title:     "Inherit",
		ContactID: &contact.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "newsletter", quote.UTMSource)
	assert.Equal(t, "email", quote.UTMMedium)
}

func TestQuoteCreate_WritesBackFirstTouchOnly(t *testing.T) {
	svc, db := newQuoteService(t)
	ctx := context.Background()

	blank := testutil.CreateTestContact(t, db, "blank@example.com")
	_, err := svc.Create(ctx, &domain.CreateQuoteRequest{
		Title:     "Write back",
		ContactID: &blank.ID,
		UTMSource: "bing",
	})
	require.NoError(t, err)

	var reloaded domain.Contact
	require.NoError(t, db.First(&reloaded, blank.ID).Error)
	assert.Equal(t, "bing", reloaded.UTMSource)
	assert.NotNil(t, reloaded.LastActivityDate)

	// a second quote with different attribution must not overwrite first touch
	_, err = svc.Create(ctx, &domain.CreateQuoteRequest{
		Title:     "Second quote",
		ContactID: &blank.ID,
		UTMSource: "facebook",
	})
	require.NoError(t, err)

	require.NoError(t, db.First(&reloaded, blank.ID).Error)
	assert.Equal(t, "bing", reloaded.UTMSource)
}

func TestQuoteUpdate_AbsoluteDiscountAndDealSync(t *testing.T) {
	svc, db := newQuoteService(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, &domain.CreateQuoteRequest{
		Title: "Sync",
		Items: []domain.QuoteItemRequest{
			{ProductName: "Mezzanine", Quantity: dec("1"), UnitPrice: dec("1000.00")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, quote.DealID)

	amount := dec("150.00")
	updated, err := svc.Update(ctx, quote.ID, &domain.UpdateQuoteRequest{
		Title:          "Sync",
		DiscountAmount: &amount,
		Items: []domain.QuoteItemRequest{
			{ProductName: "Mezzanine", Quantity: dec("1"), UnitPrice: dec("1000.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("150.00").Equal(updated.DiscountAmount))
	assert.True(t, dec("15").Equal(updated.DiscountPercent), "percent %s", updated.DiscountPercent)
	assert.True(t, dec("850.00").Equal(updated.Total))
	// saving a draft counts as sending it
	assert.Equal(t, domain.QuoteStatusSent, updated.Status)

	// deal value follows the recomputed total
	var deal domain.Deal
	require.NoError(t, db.First(&deal, *quote.DealID).Error)
	assert.True(t, dec("850.00").Equal(deal.Value))
}

func TestQuoteCreate_FailureLeavesNoOrphanDeal(t *testing.T) {
	svc, db := newQuoteService(t)
	ctx := context.Background()
	year := time.Now().UTC().Year()

	contact := testutil.CreateTestContact(t, db, "rollback@example.com")

	// occupy the number the sequence will hand out next
	taken := &domain.Quote{
		QuoteNumber: fmt.Sprintf("Q-%d-0001", year),
		Title:       "Already there",
		Status:      domain.QuoteStatusDraft,
	}
	require.NoError(t, db.Create(taken).Error)

	_, err := svc.Create(ctx, &domain.CreateQuoteRequest{
		Title:     "Collides",
		ContactID: &contact.ID,
		UTMSource: "google",
		Items: []domain.QuoteItemRequest{
			{ProductName: "Shelving", Quantity: dec("1"), UnitPrice: dec("100.00")},
		},
	})
	require.Error(t, err)

	// the auto-created deal, its contact link and the attribution
	// write-back must all roll back with the failed quote
	var deals int64
	require.NoError(t, db.Model(&domain.Deal{}).Count(&deals).Error)
	assert.EqualValues(t, 0, deals)

	var links int64
	require.NoError(t, db.Model(&domain.DealContact{}).Count(&links).Error)
	assert.EqualValues(t, 0, links)

	var reloaded domain.Contact
	require.NoError(t, db.First(&reloaded, contact.ID).Error)
	assert.Empty(t, reloaded.UTMSource)
	assert.Nil(t, reloaded.LastActivityDate)
}

func TestQuoteUpdate_FailedSaveLeavesQuoteAndDealUntouched(t *testing.T) {
	svc, db := newQuoteService(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, &domain.CreateQuoteRequest{
		Title: "Stable",
		Items: []domain.QuoteItemRequest{
			{ProductName: "Rack", Quantity: dec("1"), UnitPrice: dec("500.00")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, quote.DealID)

	// a contact reference that violates the foreign key makes the save fail
	missing := uint(99999)
	_, err = svc.Update(ctx, quote.ID, &domain.UpdateQuoteRequest{
		Title:     "Stable",
		ContactID: &missing,
		Items: []domain.QuoteItemRequest{
			{ProductName: "Rack", Quantity: dec("1"), UnitPrice: dec("900.00")},
		},
	})
	require.Error(t, err)

	reloaded, err := svc.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusDraft, reloaded.Status)
	assert.True(t, dec("500.00").Equal(reloaded.Total), "total %s", reloaded.Total)
	require.Len(t, reloaded.Items, 1)
	assert.True(t, dec("500.00").Equal(reloaded.Items[0].UnitPrice))

	var deal domain.Deal
	require.NoError(t, db.First(&deal, *quote.DealID).Error)
	assert.True(t, dec("500.00").Equal(deal.Value))
}

func TestQuoteMarkSent_OnlyFromDraft(t *testing.T) {
	svc, _ := newQuoteService(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, &domain.CreateQuoteRequest{Title: "Lifecycle"})
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusDraft, quote.Status)

	sent, err := svc.MarkSent(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusSent, sent.Status)

	// sending again is a no-op, and a terminal status is never demoted
	accepted, err := svc.UpdateStatus(ctx, quote.ID, domain.QuoteStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusAccepted, accepted.Status)

	still, err := svc.MarkSent(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusAccepted, still.Status)
}

func TestQuoteCreate_ReusesCompanyByName(t *testing.T) {
	svc, db := newQuoteService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &domain.CreateQuoteRequest{
		Title:          "Company A",
		NewCompanyName: "Acme Steel",
	})
	require.NoError(t, err)
	require.NotNil(t, first.CompanyID)

	second, err := svc.Create(ctx, &domain.CreateQuoteRequest{
		Title:          "Company B",
		NewCompanyName: "Acme Steel",
	})
	require.NoError(t, err)
	require.NotNil(t, second.CompanyID)
	assert.Equal(t, *first.CompanyID, *second.CompanyID)

	var count int64
	require.NoError(t, db.Model(&domain.Company{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestQuoteDelete_RemovesItems(t *testing.T) {
	svc, db := newQuoteService(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, &domain.CreateQuoteRequest{
		Title: "Doomed",
		Items: []domain.QuoteItemRequest{
			{ProductName: "Thing", Quantity: dec("1"), UnitPrice: dec("10.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, quote.ID))

	var items int64
	require.NoError(t, db.Model(&domain.QuoteItem{}).Where("quote_id = ?", quote.ID).Count(&items).Error)
	assert.EqualValues(t, 0, items)

	_, err = svc.GetByID(ctx, quote.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
