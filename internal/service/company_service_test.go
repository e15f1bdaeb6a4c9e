package service

import (
	"context"
	"testing"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/repository"
	"github.com/steelstack/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCompanyService(t *testing.T) (*CompanyService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewCompanyService(repository.NewCompanyRepository(db), zap.NewNop())
	return svc, db
}

func TestCompanyCreate_DuplicateNameConflicts(t *testing.T) {
	svc, _ := newCompanyService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateCompanyRequest{Name: "Acme Steel"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateCompanyRequest{Name: "Acme Steel"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCompanyDelete_DetachesReferences(t *testing.T) {
	svc, db := newCompanyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateCompanyRequest{Name: "Acme Steel"})
	require.NoError(t, err)

	contact := &domain.Contact{FirstName: "Ana", Email: "ana@acme.test", CompanyID: &created.ID}
	require.NoError(t, db.Create(contact).Error)
	deal := &domain.Deal{Name: "Acme order", Stage: domain.DealStageNew, CompanyID: &created.ID}
	require.NoError(t, db.Create(deal).Error)
	quote := &domain.Quote{QuoteNumber: "Q-2025-0001", Title: "Acme quote", Status: domain.QuoteStatusDraft, CompanyID: &created.ID}
	require.NoError(t, db.Create(quote).Error)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// referencing rows survive with the link cleared
	var gotContact domain.Contact
	require.NoError(t, db.First(&gotContact, contact.ID).Error)
	assert.Nil(t, gotContact.CompanyID)

	var gotDeal domain.Deal
	require.NoError(t, db.First(&gotDeal, deal.ID).Error)
	assert.Nil(t, gotDeal.CompanyID)

	var gotQuote domain.Quote
	require.NoError(t, db.First(&gotQuote, quote.ID).Error)
	assert.Nil(t, gotQuote.CompanyID)
}

func TestCompanyDelete_MissingNotFound(t *testing.T) {
	svc, _ := newCompanyService(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), 999), ErrNotFound)
}

func TestCompanyList_Search(t *testing.T) {
	svc, _ := newCompanyService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateCompanyRequest{Name: "Acme Steel"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateCompanyRequest{Name: "Borealis Freight"})
	require.NoError(t, err)

	page, err := svc.List(ctx, 1, 25, "acme")
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	page, err = svc.List(ctx, 1, 25, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
}
