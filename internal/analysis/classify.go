package analysis

import (
	"fmt"
	"math"

	"adlens/internal/domain"
)

// AdTrends carries the three trend percentages the classifier judges.
type AdTrends struct {
	CTRPct       float64
	CPRPct       float64
	FrequencyPct float64
}

// TrendsForAd computes the classifier's trend inputs from one ad's
// records.
func TrendsForAd(records []domain.DailyMetricRecord) AdTrends {
	sorted := SortByDate(records)
	return AdTrends{
		CTRPct:       TrendPct(sorted, MetricCTR),
		CPRPct:       TrendPct(sorted, MetricCostPerResult),
		FrequencyPct: TrendPct(sorted, MetricFrequency),
	}
}

// FatigueScore is the additive 0-100 decline heuristic. Each signal
// contributes independently; the sum is capped at 100.
func FatigueScore(avgFrequency, ctrTrendPct, cprTrendPct float64, daysRunning int) int {
	score := 0

	// Frequency tier
	switch {
	case avgFrequency >= 6:
		score += 30
	case avgFrequency >= 4:
		score += 25
	case avgFrequency >= 3:
		score += 15
	case avgFrequency >= 2:
		score += 5
	}

	// CTR decline
	switch {
	case ctrTrendPct < -25:
		score += 30
	case ctrTrendPct < -15:
		score += 20
	case ctrTrendPct < -10:
		score += 10
	}

	// Cost-per-result increase
	switch {
	case cprTrendPct > 50:
		score += 25
	case cprTrendPct > 30:
		score += 15
	case cprTrendPct > 15:
		score += 8
	}

	// Age
	switch {
	case daysRunning >= 21:
		score += 15
	case daysRunning >= 14:
		score += 10
	case daysRunning >= 10:
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

// PredictedDaysLeft estimates how long until the ad crosses the pause
// threshold, assuming fatigue keeps accruing at its observed rate.
func PredictedDaysLeft(fatigueScore, daysRunning int) int {
	if daysRunning == 0 {
		return 30
	}
	fatigueRate := float64(fatigueScore) / float64(daysRunning)
	if fatigueRate <= 0 {
		return 30
	}
	days := int(math.Round((70 - float64(fatigueScore)) / fatigueRate))
	if days < 0 {
		days = 0
	}
	return days
}

// Classify assigns one of the five triage states to an aggregated ad.
// The rules form an ordered first-match-wins list; the order is part
// of the contract (a high fatigue score always dominates a good CTR,
// and a thin sample always dominates the winner/scalable checks).
func Classify(perf domain.AggregatedAdPerformance, trends AdTrends) domain.ClassificationReport {
	score := FatigueScore(perf.AvgFrequency, trends.CTRPct, trends.CPRPct, perf.DaysRunning)

	report := domain.ClassificationReport{
		AggregatedAdPerformance: perf,
		FatigueScore:            score,
		CTRTrendPct:             trends.CTRPct,
		CPRTrendPct:             trends.CPRPct,
		FrequencyTrendPct:       trends.FrequencyPct,
		PredictedDaysLeft:       PredictedDaysLeft(score, perf.DaysRunning),
	}

	switch {
	case score >= 60:
		report.Classification = domain.ClassPauseRecommended
		report.ClassificationReason = fmt.Sprintf(
			"Fatigue score %d/100: the creative is exhausted (frequency %.1f, CTR trend %+.1f%%)",
			score, perf.AvgFrequency, trends.CTRPct)
		report.Recommendations = []string{
			"Pause this ad and move its budget to fresher creatives",
			"Rebuild the concept with new hooks before re-launching",
		}

	case score >= 40:
		report.Classification = domain.ClassFatigued
		report.ClassificationReason = fmt.Sprintf(
			"Fatigue score %d/100: performance is declining (CPR trend %+.1f%%)",
			score, trends.CPRPct)
		report.Recommendations = []string{
			"Refresh the creative (new thumbnail, opening, or copy)",
			"Reduce budget until a refreshed variant is live",
		}

	case perf.TotalResults < 10 || perf.DaysRunning < 5:
		report.Classification = domain.ClassTesting
		report.ClassificationReason = fmt.Sprintf(
			"Insufficient sample: %d results over %d days is too little to judge",
			perf.TotalResults, perf.DaysRunning)
		report.Recommendations = []string{
			"Keep running until at least 10 results over 5+ days",
		}

	case perf.AvgCTR >= 1.5 && trends.CPRPct <= 0 && perf.AvgFrequency < 3:
		report.Classification = domain.ClassWinner
		report.ClassificationReason = fmt.Sprintf(
			"CTR %.2f%% with stable-or-improving cost per result (%+.1f%%) and low frequency %.1f",
			perf.AvgCTR, trends.CPRPct, perf.AvgFrequency)
		report.Recommendations = []string{
			"Increase budget 20-30%",
			"Duplicate into new audiences to extend reach",
		}

	case perf.AvgCTR >= 1.0 && trends.CPRPct <= 10 && perf.AvgFrequency < 3.5:
		report.Classification = domain.ClassScalable
		report.ClassificationReason = fmt.Sprintf(
			"Solid CTR %.2f%% and contained cost-per-result drift (%+.1f%%)",
			perf.AvgCTR, trends.CPRPct)
		report.Recommendations = []string{
			"Scale budget in 10-15% steps while watching frequency",
		}

	default:
		report.Classification = domain.ClassTesting
		report.ClassificationReason = fmt.Sprintf(
			"Mixed performance: CTR %.2f%%, CPR trend %+.1f%%, frequency %.1f",
			perf.AvgCTR, trends.CPRPct, perf.AvgFrequency)
		report.Recommendations = []string{
			"Hold budget steady and re-evaluate in a few days",
		}
	}

	return report
}
