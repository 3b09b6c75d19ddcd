package usecase

import (
	"context"
	"testing"
	"time"

	"adlens/internal/domain"
	"adlens/internal/infrastructure"
	"adlens/pkg/logger"
	"adlens/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// promauto registers against the default registry, so the package
// shares one Metrics instance across all tests.
var testMetrics = metrics.New()

func testLogger() *logger.Logger {
	return logger.New("error")
}

func seedRecords(t *testing.T, repo *infrastructure.RecordRepository, records []domain.DailyMetricRecord) {
	t.Helper()
	require.NoError(t, repo.Store(context.Background(), records))
}

func metricRow(clientID, adName string, d int, impressions, reach, clicks int, spend float64, results int) domain.DailyMetricRecord {
	rec := domain.DailyMetricRecord{
		ClientID:     clientID,
		CampaignID:   "c1",
		CampaignName: "Summer",
		AdSetName:    "Broad",
		AdName:       adName,
		Date:         time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC),
		Impressions:  impressions,
		Reach:        reach,
		Clicks:       clicks,
		Spend:        spend,
		Results:      results,
		ResultType:   "Leads",
	}
	if reach > 0 {
		rec.Frequency = float64(impressions) / float64(reach)
	}
	return rec
}

func newInsightsFixture() (*InsightsService, *infrastructure.RecordRepository, *infrastructure.BudgetRepository) {
	log := testLogger()
	recordRepo := infrastructure.NewRecordRepository(log)
	budgetRepo := infrastructure.NewBudgetRepository(log)
	svc := NewInsightsService(recordRepo, budgetRepo, log, testMetrics, 4)
	return svc, recordRepo, budgetRepo
}

func TestInsightsService_AdClassifications(t *testing.T) {
	svc, recordRepo, _ := newInsightsFixture()

	var records []domain.DailyMetricRecord
	// A steady winner: 2% CTR, low frequency, plenty of results.
	for d := 1; d <= 14; d++ {
		records = append(records, metricRow("acme", "Hero Video", d, 1000, 900, 20, 50, 5))
	}
	// A young ad that should stay in testing.
	records = append(records, metricRow("acme", "New Static", 14, 500, 450, 5, 20, 1))
	// Another client's data must not leak in.
	records = append(records, metricRow("other", "Foreign Ad", 14, 500, 450, 5, 20, 1))
	seedRecords(t, recordRepo, records)

	reports, err := svc.AdClassifications(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, reports, 2)

	byName := make(map[string]domain.ClassificationReport)
	for _, r := range reports {
		byName[r.AdName] = r
	}

	winner := byName["Hero Video"]
	assert.Equal(t, domain.ClassWinner, winner.Classification)
	assert.InDelta(t, 2.0, winner.AvgCTR, 1e-9)
	assert.NotEmpty(t, winner.Recommendations)

	young := byName["New Static"]
	assert.Equal(t, domain.ClassTesting, young.Classification)
}

func TestInsightsService_AdClassificationsEmptyClient(t *testing.T) {
	svc, _, _ := newInsightsFixture()

	reports, err := svc.AdClassifications(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestInsightsService_BudgetPacingUsesCurrentMonthOnly(t *testing.T) {
	svc, recordRepo, budgetRepo := newInsightsFixture()

	require.NoError(t, budgetRepo.Upsert(context.Background(), []domain.CampaignBudget{
		{ClientID: "acme", CampaignID: "c1", CampaignName: "Summer", MonthlyBudget: 1000, Active: true},
	}))

	var records []domain.DailyMetricRecord
	// May spend must be excluded from June pacing.
	records = append(records, domain.DailyMetricRecord{
		ClientID: "acme", AdName: "Hero Video",
		Date:  time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		Spend: 900,
	})
	for d := 1; d <= 15; d++ {
		records = append(records, metricRow("acme", "Hero Video", d, 1000, 900, 20, 30, 5))
	}
	seedRecords(t, recordRepo, records)

	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	report, err := svc.BudgetPacing(context.Background(), "acme", now)
	require.NoError(t, err)

	assert.InDelta(t, 1000, report.MonthlyBudget, 1e-9)
	assert.InDelta(t, 450, report.SpentToDate, 1e-9)
	assert.InDelta(t, 900, report.ProjectedEndOfMonthSpend, 1e-9)
	assert.Equal(t, domain.PacingOnTrack, report.Status)
}

func TestInsightsService_QualityAndConcentration(t *testing.T) {
	svc, recordRepo, _ := newInsightsFixture()

	var records []domain.DailyMetricRecord
	for d := 1; d <= 14; d++ {
		records = append(records,
			metricRow("acme", "Hero Video", d, 1000, 900, 20, 50, 7),
			metricRow("acme", "Static B", d, 800, 700, 10, 30, 2),
			metricRow("acme", "Carousel C", d, 500, 450, 5, 20, 1),
		)
	}
	seedRecords(t, recordRepo, records)

	quality, err := svc.Quality(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, domain.QualityReady, quality.Status)
	assert.Equal(t, 100, quality.Score)

	concentration, err := svc.Concentration(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "Hero Video", concentration.TopAdName)
	assert.Equal(t, domain.RiskCritical, concentration.Risk)
}

func TestInsightsService_Simulations(t *testing.T) {
	svc, recordRepo, _ := newInsightsFixture()

	seedRecords(t, recordRepo, []domain.DailyMetricRecord{
		metricRow("acme", "Tired Video", 1, 1000, 900, 10, 500, 10),
		metricRow("acme", "Static B", 1, 1000, 900, 10, 500, 50),
	})

	budget, err := svc.SimulateBudgetChange(context.Background(), "acme", 0)
	require.NoError(t, err)
	assert.InDelta(t, budget.CurrentResults, budget.ProjectedResults, 1e-9)

	pause, err := svc.SimulatePauseAd(context.Background(), "acme", "Tired Video")
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictPause, pause.Verdict)
}

func TestInsightsService_AgencyROI(t *testing.T) {
	svc, recordRepo, _ := newInsightsFixture()

	seedRecords(t, recordRepo, []domain.DailyMetricRecord{
		metricRow("acme", "Hero Video", 1, 1000, 900, 20, 1000, 100),
	})

	report, err := svc.AgencyROI(context.Background(), "acme", 50)
	require.NoError(t, err)
	assert.InDelta(t, 10, report.ActualCPR, 1e-9)
	assert.InDelta(t, 12.5, report.UnoptimizedCPR, 1e-9)
	assert.InDelta(t, 1000, report.EstimatedValue, 1e-9)
}

func TestInsightsService_SetBudgets(t *testing.T) {
	svc, _, budgetRepo := newInsightsFixture()

	err := svc.SetBudgets(context.Background(), []domain.CampaignBudget{
		{ClientID: "acme", CampaignID: "c1", MonthlyBudget: 1000, Active: true},
		{ClientID: "acme", CampaignID: "c2", MonthlyBudget: 500, Active: false},
	})
	require.NoError(t, err)

	active, err := budgetRepo.GetActiveByClient(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "c1", active[0].CampaignID)
}
