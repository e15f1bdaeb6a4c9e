package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/repository"
	"github.com/steelstack/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProductService(t *testing.T) *ProductService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewProductService(repository.NewProductRepository(db), zap.NewNop())
}

func TestProductCreate_DuplicateSKUConflicts(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateProductRequest{
		Name:  "I-Beam 12ft",
		SKU:   "IB-12",
		Price: decimal.RequireFromString("115.00"),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateProductRequest{
		Name:  "Other beam",
		SKU:   "IB-12",
		Price: decimal.RequireFromString("99.00"),
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProductDeactivate_HidesFromActiveListing(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	active, err := svc.Create(ctx, &domain.CreateProductRequest{
		Name:  "I-Beam 12ft",
		SKU:   "IB-12",
		Price: decimal.RequireFromString("115.00"),
	})
	require.NoError(t, err)
	assert.True(t, active.IsActive)

	retired, err := svc.Create(ctx, &domain.CreateProductRequest{
		Name:  "Legacy channel",
		SKU:   "LC-01",
		Price: decimal.RequireFromString("40.00"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, retired.ID))

	page, err := svc.List(ctx, 1, 25, "", true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	page, err = svc.List(ctx, 1, 25, "", false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	// still addressable directly
	got, err := svc.GetByID(ctx, retired.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestProductUpdate_ReactivateViaFlag(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateProductRequest{
		Name:  "Plate 4x8",
		SKU:   "PL-48",
		Price: decimal.RequireFromString("220.00"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, created.ID))

	reactivate := true
	got, err := svc.Update(ctx, created.ID, &domain.UpdateProductRequest{
		Name:     "Plate 4x8",
		SKU:      "PL-48",
		Price:    decimal.RequireFromString("235.00"),
		IsActive: &reactivate,
	})
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.True(t, decimal.RequireFromString("235.00").Equal(got.Price))
}
