package service

import (
	"context"
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

func newAnalyticsService(t *testing.T) (*AnalyticsService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewAnalyticsService(
		repository.NewDealRepository(db),
		repository.NewContactRepository(db),
		repository.NewQuoteRepository(db),
		db,
		zap.NewNop(),
	)
	return svc, db
}

func TestDashboard_PipelineExcludesClosedDeals(t *testing.T) {
	svc, db := newAnalyticsService(t)

	testutil.CreateTestDeal(t, db, "open1", domain.DealStageNew, "100")
	testutil.CreateTestDeal(t, db, "open2", domain.DealStageNegotiation, "400")
	testutil.CreateTestDeal(t, db, "won", domain.DealStageClosedWon, "1000")
	testutil.CreateTestDeal(t, db, "lost", domain.DealStageClosedLost, "9999")

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 4, dash.DealCount)
	assert.EqualValues(t, 2, dash.OpenDealCount)
	assert.True(t, decimal.RequireFromString("500").Equal(dash.PipelineValue), "pipeline %s", dash.PipelineValue)
	assert.True(t, decimal.RequireFromString("1000").Equal(dash.WonValue))
	// lost value appears in the breakdown but in neither headline number
	assert.Len(t, dash.StageBreakdown, 4)
}

func TestDashboard_UntouchedLeadsOldestFirst(t *testing.T) {
	svc, db := newAnalyticsService(t)

	older := testutil.CreateTestContact(t, db, "older@example.com")
	require.NoError(t, db.Model(older).Update("created_at", time.Now().UTC().Add(-48*time.Hour)).Error)
	testutil.CreateTestContact(t, db, "newer@example.com")

	touched := testutil.CreateTestContact(t, db, "touched@example.com")
	now := time.Now().UTC()
	require.NoError(t, db.Model(touched).Update("last_activity_date", &now).Error)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dash.UntouchedLeads, 2)
	assert.Equal(t, "older@example.com", dash.UntouchedLeads[0].Email)
	assert.Equal(t, "newer@example.com", dash.UntouchedLeads[1].Email)
}

func TestDealsByMonth_BucketsByMonthAndMedium(t *testing.T) {
	svc, db := newAnalyticsService(t)

	mkWon := func(value, medium string, closed time.Time) {
		deal := &domain.Deal{
			Name:            "won",
			Stage:           domain.DealStageClosedWon,
			Value:           decimal.RequireFromString(value),
			UTMMedium:       medium,
			CloseReason:     "signed",
			ActualCloseDate: &closed,
		}
		require.NoError(t, db.Create(deal).Error)
	}

	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	mkWon("100", "cpc", jan)
	mkWon("250", "cpc", jan)
	mkWon("75", "", jan)
	mkWon("500", "cpc", feb)

	// open deals are ignored entirely
	testutil.CreateTestDeal(t, db, "open", domain.DealStageNew, "7777")

	rows, err := svc.DealsByMonth(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2025-01", rows[0].Month)
	assert.Equal(t, "cpc", rows[0].Medium)
	assert.EqualValues(t, 2, rows[0].Count)
	assert.True(t, decimal.RequireFromString("350").Equal(rows[0].TotalValue))

	// missing medium is reported as direct
	assert.Equal(t, "direct", rows[1].Medium)
	assert.EqualValues(t, 1, rows[1].Count)

	assert.Equal(t, "2025-02", rows[2].Month)
}

func TestLeadsByMonth_BucketsBySource(t *testing.T) {
	svc, db := newAnalyticsService(t)

	mkLead := func(email, source string, created time.Time) {
		contact := &domain.Contact{
			FirstName: "Lead",
			Email:     email,
			UTMSource: source,
		}
		require.NoError(t, db.Create(contact).Error)
		require.NoError(t, db.Model(contact).Update("created_at", created).Error)
	}

	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	mkLead("a@example.com", "google", jan)
	mkLead("b@example.com", "google", jan)
	mkLead("c@example.com", "", jan)
	mkLead("d@example.com", "google", feb)

	rows, err := svc.LeadsByMonth(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2025-01", rows[0].Month)
	assert.Equal(t, "google", rows[0].Source)
	assert.EqualValues(t, 2, rows[0].Count)

	assert.Equal(t, "direct", rows[1].Source)
	assert.EqualValues(t, 1, rows[1].Count)

	assert.Equal(t, "2025-02", rows[2].Month)
	assert.EqualValues(t, 1, rows[2].Count)
}
