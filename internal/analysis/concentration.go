package analysis

import (
	"fmt"
	"sort"

	"adlens/internal/domain"
)

// AnalyzeConcentration measures how dependent the account's results
// are on its top ads.
func AnalyzeConcentration(records []domain.DailyMetricRecord) domain.ConcentrationReport {
	byAd := make(map[string]int)
	var total int
	for _, rec := range records {
		byAd[rec.AdName] += rec.Results
		total += rec.Results
	}

	shares := make([]domain.AdShare, 0, len(byAd))
	for name, results := range byAd {
		share := domain.AdShare{AdName: name, Results: results}
		if total > 0 {
			share.SharePct = float64(results) / float64(total) * 100
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Results != shares[j].Results {
			return shares[i].Results > shares[j].Results
		}
		return shares[i].AdName < shares[j].AdName
	})

	report := domain.ConcentrationReport{
		TotalResults: total,
		Shares:       shares,
	}

	if len(shares) > 0 {
		report.TopAdName = shares[0].AdName
		report.TopAdSharePct = shares[0].SharePct
	}
	for i := 0; i < len(shares) && i < 3; i++ {
		report.Top3SharePct += shares[i].SharePct
	}

	top := report.TopAdSharePct
	top3 := report.Top3SharePct

	switch {
	case top >= 60:
		report.Risk = domain.RiskCritical
		report.Message = fmt.Sprintf("%q alone produces %.0f%% of all results", report.TopAdName, top)
		report.Recommendation = "The account collapses if this ad fatigues: launch challenger creatives immediately"
	case top >= 45 || top3 >= 85:
		report.Risk = domain.RiskHigh
		report.Message = fmt.Sprintf("Top ad holds %.0f%% and the top 3 hold %.0f%% of results", top, top3)
		report.Recommendation = "Diversify: brief at least two new concepts this week"
	case top >= 30 || top3 >= 70:
		report.Risk = domain.RiskMedium
		report.Message = fmt.Sprintf("Top ad holds %.0f%% of results", top)
		report.Recommendation = "Keep a steady testing cadence so no single ad carries the account"
	default:
		report.Risk = domain.RiskLow
		report.Message = "Results are well spread across ads"
		report.Recommendation = "No concentration action needed"
	}

	return report
}
