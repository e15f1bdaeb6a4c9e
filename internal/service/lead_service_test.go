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

func newLeadService(t *testing.T) (*LeadService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewLeadService(repository.NewContactRepository(db), zap.NewNop()), db
}

func TestLeadSubmit_NewContactCapturesEverything(t *testing.T) {
	svc, db := newLeadService(t)

	dto, err := svc.Submit(context.Background(), &domain.LeadSubmissionRequest{
		FirstName:   "Dana",
		LastName:    "Holt",
		Email:       "dana@example.com",
		Phone:       "555-0199",
		Message:     "Need pricing for 40 pallet positions",
		UTMSource:   "google",
		UTMMedium:   "cpc",
		UTMCampaign: "spring",
		LandingPage: "/pallet-racking",
		Referrer:    "https://www.google.com/",
	})
	require.NoError(t, err)

	var contact domain.Contact
	require.NoError(t, db.First(&contact, dto.ID).Error)
	assert.Equal(t, "google", contact.UTMSource)
	assert.Equal(t, "/pallet-racking", contact.LandingPage)
	assert.Contains(t, contact.Notes, "Need pricing for 40 pallet positions")
	assert.Contains(t, contact.Notes, "[Web form ")
}

func TestLeadSubmit_ReturningLeadKeepsFirstTouch(t *testing.T) {
	svc, db := newLeadService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, &domain.LeadSubmissionRequest{
		Email:     "repeat@example.com",
		UTMSource: "google",
		UTMMedium: "organic",
		Message:   "first message",
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, &domain.LeadSubmissionRequest{
		FirstName: "Sam",
		Email:     "repeat@example.com",
		UTMSource: "facebook",
		UTMMedium: "paid",
		Message:   "second message",
	})
	require.NoError(t, err)

	var contact domain.Contact
	require.NoError(t, db.Where("email = ?", "repeat@example.com").First(&contact).Error)
	// first touch wins
	assert.Equal(t, "google", contact.UTMSource)
	assert.Equal(t, "organic", contact.UTMMedium)
	// but empty identity fields are filled in
	assert.Equal(t, "Sam", contact.FirstName)
	// and every message is kept
	assert.Contains(t, contact.Notes, "first message")
	assert.Contains(t, contact.Notes, "second message")

	var count int64
	require.NoError(t, db.Model(&domain.Contact{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLeadSubmit_ReturningLeadWithoutAttributionGainsIt(t *testing.T) {
	svc, db := newLeadService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, &domain.LeadSubmissionRequest{Email: "late@example.com"})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, &domain.LeadSubmissionRequest{
		Email:     "late@example.com",
		UTMSource: "newsletter",
	})
	require.NoError(t, err)

	var contact domain.Contact
	require.NoError(t, db.Where("email = ?", "late@example.com").First(&contact).Error)
	assert.Equal(t, "newsletter", contact.UTMSource)
}

func TestLeadSubmit_EmailMatchIsCaseInsensitive(t *testing.T) {
	svc, db := newLeadService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, &domain.LeadSubmissionRequest{Email: "Mixed@Example.com"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, &domain.LeadSubmissionRequest{Email: "mixed@example.com"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.Contact{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
