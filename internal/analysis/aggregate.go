// Package analysis is the decision engine: pure functions from daily
// metric records to report values. Nothing here does I/O, logs, or
// errors on degenerate data. Every rate with a zero denominator is 0,
// and every small-sample component returns a defined insufficient-data
// report.
package analysis

import (
	"sort"
	"time"

	"adlens/internal/domain"
)

// Aggregate folds records into one lifetime view per (client, ad name).
// Ads are keyed by name so a creative reused across ad sets rolls up
// into a single row. Output is sorted by ad name for stable responses.
func Aggregate(records []domain.DailyMetricRecord) []domain.AggregatedAdPerformance {
	type group struct {
		perf domain.AggregatedAdPerformance
		days map[string]bool
	}

	groups := make(map[domain.AdKey]*group)

	for _, rec := range records {
		key := domain.AdKey{ClientID: rec.ClientID, AdName: rec.AdName}
		g, ok := groups[key]
		if !ok {
			g = &group{
				perf: domain.AggregatedAdPerformance{
					ClientID:     rec.ClientID,
					AdName:       rec.AdName,
					AdSetName:    rec.AdSetName,
					CampaignName: rec.CampaignName,
					FirstDate:    rec.Date,
					LastDate:     rec.Date,
				},
				days: make(map[string]bool),
			}
			groups[key] = g
		}

		g.perf.TotalImpressions += rec.Impressions
		g.perf.TotalClicks += rec.Clicks
		g.perf.TotalSpend += rec.Spend
		g.perf.TotalResults += rec.Results
		g.perf.TotalReach += rec.Reach
		g.days[rec.Date.Format("2006-01-02")] = true

		if rec.Date.Before(g.perf.FirstDate) {
			g.perf.FirstDate = rec.Date
		}
		if rec.Date.After(g.perf.LastDate) {
			g.perf.LastDate = rec.Date
		}
	}

	result := make([]domain.AggregatedAdPerformance, 0, len(groups))
	for _, g := range groups {
		g.perf.DaysRunning = len(g.days)

		// Derived rates with division by zero protection
		if g.perf.TotalImpressions > 0 {
			g.perf.AvgCTR = float64(g.perf.TotalClicks) / float64(g.perf.TotalImpressions) * 100
		}
		if g.perf.TotalResults > 0 {
			g.perf.AvgCostPerResult = g.perf.TotalSpend / float64(g.perf.TotalResults)
		}
		if g.perf.TotalReach > 0 {
			g.perf.AvgFrequency = float64(g.perf.TotalImpressions) / float64(g.perf.TotalReach)
		}

		result = append(result, g.perf)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ClientID != result[j].ClientID {
			return result[i].ClientID < result[j].ClientID
		}
		return result[i].AdName < result[j].AdName
	})

	return result
}

// AggregateByDate rolls records up into account-wide per-day totals,
// sorted chronologically.
func AggregateByDate(records []domain.DailyMetricRecord) []domain.DailyRollup {
	byDate := make(map[time.Time]*domain.DailyRollup)

	for _, rec := range records {
		day := rec.Date.UTC().Truncate(24 * time.Hour)
		rollup, ok := byDate[day]
		if !ok {
			rollup = &domain.DailyRollup{Date: day}
			byDate[day] = rollup
		}
		rollup.Impressions += rec.Impressions
		rollup.Reach += rec.Reach
		rollup.Clicks += rec.Clicks
		rollup.Spend += rec.Spend
		rollup.Results += rec.Results
	}

	result := make([]domain.DailyRollup, 0, len(byDate))
	for _, rollup := range byDate {
		result = append(result, *rollup)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result
}

// SortByDate returns a date-ascending copy of records. The input slice
// is never reordered in place; report generation must not mutate the
// shared dataset.
func SortByDate(records []domain.DailyMetricRecord) []domain.DailyMetricRecord {
	sorted := make([]domain.DailyMetricRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// blendedCPR is total spend over total results for a partition, 0 when
// the partition produced no results.
func blendedCPR(records []domain.DailyMetricRecord) float64 {
	var spend float64
	var results int
	for _, rec := range records {
		spend += rec.Spend
		results += rec.Results
	}
	if results == 0 {
		return 0
	}
	return spend / float64(results)
}
