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

func newContactService(t *testing.T) (*ContactService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewContactService(
		repository.NewContactRepository(db),
		repository.NewCompanyRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestContactCreate_DuplicateEmailConflicts(t *testing.T) {
	svc, _ := newContactService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateContactRequest{
		FirstName: "Ana",
		Email:     "ana@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateContactRequest{
		FirstName: "Other",
		Email:     "ana@example.com",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestContactCreate_UnknownCompanyNotFound(t *testing.T) {
	svc, _ := newContactService(t)

	missing := uint(404)
	_, err := svc.Create(context.Background(), &domain.CreateContactRequest{
		FirstName: "Ana",
		Email:     "ana@example.com",
		CompanyID: &missing,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactUpdate_FirstTouchAttributionSticks(t *testing.T) {
	svc, _ := newContactService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateContactRequest{
		FirstName: "Ana",
		Email:     "ana@example.com",
		UTMSource: "google",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &domain.UpdateContactRequest{
		FirstName: "Ana",
		Email:     "ana@example.com",
		UTMSource: "facebook",
		UTMMedium: "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, "google", updated.UTMSource)
	assert.Empty(t, updated.UTMMedium)
}

func TestContactUpdate_FillsAttributionWhenEmpty(t *testing.T) {
	svc, _ := newContactService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateContactRequest{
		FirstName: "Blank",
		Email:     "blank@example.com",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &domain.UpdateContactRequest{
		FirstName: "Blank",
		Email:     "blank@example.com",
		UTMSource: "referral",
	})
	require.NoError(t, err)
	assert.Equal(t, "referral", updated.UTMSource)
}

func TestContactList_SearchAndFilter(t *testing.T) {
	svc, db := newContactService(t)
	ctx := context.Background()

	company := &domain.Company{Name: "Acme Steel"}
	require.NoError(t, db.Create(company).Error)

	_, err := svc.Create(ctx, &domain.CreateContactRequest{
		FirstName: "Maria",
		LastName:  "Lopez",
		Email:     "maria@acme.test",
		CompanyID: &company.ID,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateContactRequest{
		FirstName: "Bob",
		Email:     "bob@other.test",
	})
	require.NoError(t, err)

	// search is case-insensitive
	page, err := svc.List(ctx, 1, 25, &repository.ContactFilters{Search: "MARIA"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	page, err = svc.List(ctx, 1, 25, &repository.ContactFilters{CompanyID: &company.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	page, err = svc.List(ctx, 1, 25, &repository.ContactFilters{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}
