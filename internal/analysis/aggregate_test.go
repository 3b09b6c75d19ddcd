package analysis

import (
	"testing"
	"time"

	"adlens/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func record(adName string, d int, impressions, reach, clicks int, spend float64, results int) domain.DailyMetricRecord {
	rec := domain.DailyMetricRecord{
		ClientID:     "acme",
		CampaignID:   "c1",
		CampaignName: "Summer",
		AdSetName:    "Broad",
		AdName:       adName,
		Date:         day(d),
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

func TestAggregate_SumsAndRates(t *testing.T) {
	records := []domain.DailyMetricRecord{
		record("Video A", 1, 1000, 800, 20, 50, 5),
		record("Video A", 2, 2000, 1200, 30, 70, 7),
		record("Static B", 1, 500, 400, 5, 25, 2),
	}

	aggs := Aggregate(records)
	require.Len(t, aggs, 2)

	// Sorted by ad name
	b, a := aggs[0], aggs[1]
	assert.Equal(t, "Static B", b.AdName)
	assert.Equal(t, "Video A", a.AdName)

	assert.Equal(t, 3000, a.TotalImpressions)
	assert.Equal(t, 50, a.TotalClicks)
	assert.InDelta(t, 120, a.TotalSpend, 1e-9)
	assert.Equal(t, 12, a.TotalResults)
	assert.Equal(t, 2000, a.TotalReach)
	assert.Equal(t, 2, a.DaysRunning)
	assert.Equal(t, day(1), a.FirstDate)
	assert.Equal(t, day(2), a.LastDate)

	assert.InDelta(t, 50.0/3000.0*100, a.AvgCTR, 1e-9)
	assert.InDelta(t, 120.0/12.0, a.AvgCostPerResult, 1e-9)
	assert.InDelta(t, 3000.0/2000.0, a.AvgFrequency, 1e-9)
}

func TestAggregate_DuplicateRowsAreSummed(t *testing.T) {
	// Two rows for the same ad and day count once for days running but
	// sum everywhere else.
	records := []domain.DailyMetricRecord{
		record("Video A", 1, 100, 90, 2, 10, 1),
		record("Video A", 1, 100, 90, 2, 10, 1),
	}

	aggs := Aggregate(records)
	require.Len(t, aggs, 1)
	assert.Equal(t, 200, aggs[0].TotalImpressions)
	assert.Equal(t, 2, aggs[0].TotalResults)
	assert.Equal(t, 1, aggs[0].DaysRunning)
}

func TestAggregate_ZeroDenominatorsYieldZeroRates(t *testing.T) {
	records := []domain.DailyMetricRecord{
		record("Dead Ad", 1, 0, 0, 0, 12.5, 0),
	}

	aggs := Aggregate(records)
	require.Len(t, aggs, 1)
	assert.Zero(t, aggs[0].AvgCTR)
	assert.Zero(t, aggs[0].AvgCostPerResult)
	assert.Zero(t, aggs[0].AvgFrequency)
}

func TestAggregate_Associativity(t *testing.T) {
	records := []domain.DailyMetricRecord{
		record("Video A", 1, 1000, 800, 20, 50, 5),
		record("Video A", 2, 2000, 1200, 30, 70, 7),
		record("Video A", 3, 1500, 900, 25, 60, 6),
		record("Video A", 4, 1200, 700, 18, 45, 4),
	}

	whole := Aggregate(records)
	firstHalf := Aggregate(records[:2])
	secondHalf := Aggregate(records[2:])

	require.Len(t, whole, 1)
	require.Len(t, firstHalf, 1)
	require.Len(t, secondHalf, 1)

	assert.Equal(t, whole[0].TotalResults, firstHalf[0].TotalResults+secondHalf[0].TotalResults)
	assert.Equal(t, whole[0].TotalImpressions, firstHalf[0].TotalImpressions+secondHalf[0].TotalImpressions)
	assert.Equal(t, whole[0].TotalClicks, firstHalf[0].TotalClicks+secondHalf[0].TotalClicks)
	assert.InDelta(t, whole[0].TotalSpend, firstHalf[0].TotalSpend+secondHalf[0].TotalSpend, 1e-9)
}

func TestAggregate_GroupsByClientAndAdName(t *testing.T) {
	a := record("Video A", 1, 100, 90, 2, 10, 1)
	b := record("Video A", 1, 100, 90, 2, 10, 1)
	b.ClientID = "globex"

	aggs := Aggregate([]domain.DailyMetricRecord{a, b})
	assert.Len(t, aggs, 2)
}

func TestAggregateByDate(t *testing.T) {
	records := []domain.DailyMetricRecord{
		record("Video A", 2, 200, 150, 4, 20, 2),
		record("Static B", 1, 100, 90, 2, 10, 1),
		record("Video A", 1, 100, 90, 2, 10, 1),
	}

	rollups := AggregateByDate(records)
	require.Len(t, rollups, 2)

	assert.Equal(t, day(1), rollups[0].Date)
	assert.Equal(t, 200, rollups[0].Impressions)
	assert.Equal(t, 2, rollups[0].Results)
	assert.Equal(t, day(2), rollups[1].Date)
	assert.Equal(t, 200, rollups[1].Impressions)
}

func TestSortByDate_DoesNotMutateInput(t *testing.T) {
	records := []domain.DailyMetricRecord{
		record("Video A", 3, 100, 90, 2, 10, 1),
		record("Video A", 1, 100, 90, 2, 10, 1),
	}

	sorted := SortByDate(records)
	assert.Equal(t, day(1), sorted[0].Date)
	assert.Equal(t, day(3), records[0].Date, "input order must be preserved")
}
