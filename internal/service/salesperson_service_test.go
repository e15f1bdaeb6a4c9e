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

func newSalespersonService(t *testing.T) (*SalespersonService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewSalespersonService(repository.NewSalespersonRepository(db), zap.NewNop()), db
}

func TestSalespersonCreate_DuplicateNameConflicts(t *testing.T) {
	svc, _ := newSalespersonService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateSalespersonRequest{Name: "Pat Rep"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateSalespersonRequest{Name: "Pat Rep"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSalespersonDelete_DetachesDealsAndQuotes(t *testing.T) {
	svc, db := newSalespersonService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateSalespersonRequest{
		Name:  "Pat Rep",
		Email: "pat@steelstack.test",
	})
	require.NoError(t, err)

	deal := &domain.Deal{Name: "Pat's deal", Stage: domain.DealStageNew, SalespersonID: &created.ID}
	require.NoError(t, db.Create(deal).Error)
	quote := &domain.Quote{
		QuoteNumber:     "Q-2025-0001",
		Title:           "Pat's quote",
		Status:          domain.QuoteStatusDraft,
		SalespersonID:   &created.ID,
		SalespersonName: "Pat Rep",
	}
	require.NoError(t, db.Create(quote).Error)

	require.NoError(t, svc.Delete(ctx, created.ID))

	var gotDeal domain.Deal
	require.NoError(t, db.First(&gotDeal, deal.ID).Error)
	assert.Nil(t, gotDeal.SalespersonID)

	// the link is cleared but the snapshot on the quote survives
	var gotQuote domain.Quote
	require.NoError(t, db.First(&gotQuote, quote.ID).Error)
	assert.Nil(t, gotQuote.SalespersonID)
	assert.Equal(t, "Pat Rep", gotQuote.SalespersonName)
}

func TestSalespersonUpdate_MissingNotFound(t *testing.T) {
	svc, _ := newSalespersonService(t)
	_, err := svc.Update(context.Background(), 42, &domain.UpdateSalespersonRequest{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrNotFound)
}
