package analysis

import (
	"fmt"

	"adlens/internal/domain"
)

// ScoreQuality judges whether the account has enough data to trust
// any other report. The score starts at 100 and each thin dimension
// deducts independently; every deduction is recorded as an issue so
// callers can explain the number.
func ScoreQuality(records []domain.DailyMetricRecord) domain.QualityReport {
	days := make(map[string]bool)
	ads := make(map[string]bool)
	var impressions, results int

	for _, rec := range records {
		days[rec.Date.Format("2006-01-02")] = true
		ads[rec.AdName] = true
		impressions += rec.Impressions
		results += rec.Results
	}

	summary := domain.DataSummary{
		Days:        len(days),
		Impressions: impressions,
		Results:     results,
		DistinctAds: len(ads),
	}

	score := 100
	issues := []domain.QualityIssue{}

	deduct := func(impact int, issue, detail string) {
		score -= impact
		issues = append(issues, domain.QualityIssue{
			Issue:       issue,
			Detail:      detail,
			ScoreImpact: impact,
		})
	}

	switch {
	case summary.Days < 7:
		deduct(30, "Too few days of data",
			fmt.Sprintf("Only %d distinct days recorded; 7+ needed for stable trends", summary.Days))
	case summary.Days < 14:
		deduct(15, "Limited history",
			fmt.Sprintf("%d distinct days recorded; 14+ gives reliable week-over-week trends", summary.Days))
	}

	switch {
	case summary.Impressions < 1000:
		deduct(25, "Very low impression volume",
			fmt.Sprintf("%d impressions total; rates are noise below 1,000", summary.Impressions))
	case summary.Impressions < 10000:
		deduct(10, "Low impression volume",
			fmt.Sprintf("%d impressions total; 10,000+ stabilizes CTR comparisons", summary.Impressions))
	}

	switch {
	case summary.Results < 10:
		deduct(25, "Too few results",
			fmt.Sprintf("%d results total; cost-per-result is unreliable below 10", summary.Results))
	case summary.Results < 50:
		deduct(10, "Few results",
			fmt.Sprintf("%d results total; 50+ makes efficiency comparisons trustworthy", summary.Results))
	}

	if summary.DistinctAds < 3 {
		deduct(15, "Low ad diversity",
			fmt.Sprintf("Only %d distinct ads; contrasts need at least 3", summary.DistinctAds))
	}

	if score < 0 {
		score = 0
	}

	var status domain.QualityStatus
	switch {
	case score >= 70:
		status = domain.QualityReady
	case score >= 40:
		status = domain.QualityLimited
	default:
		status = domain.QualityInsufficient
	}

	return domain.QualityReport{
		Score:       score,
		Status:      status,
		Issues:      issues,
		DataSummary: summary,
	}
}
