package analysis

import (
	"math"

	"adlens/internal/domain"
)

// minSaturationRows is the sample floor below which the scorer returns
// a neutral healthy report instead of guessing.
const minSaturationRows = 14

func pctChange(first, second float64) float64 {
	if first == 0 {
		return 0
	}
	return (second - first) / first * 100
}

// ScoreSaturation detects the frequency-up/reach-down pattern that
// signals an exhausted audience. Rows are split at the date-sorted
// midpoint and the halves compared.
func ScoreSaturation(records []domain.DailyMetricRecord) domain.SaturationReport {
	if len(records) < minSaturationRows {
		return domain.SaturationReport{
			Status:            domain.SaturationHealthy,
			EstimatedDaysLeft: 30,
			Recommendation:    "Not enough data to assess saturation; keep collecting (14+ days needed)",
		}
	}

	sorted := SortByDate(records)
	mid := len(sorted) / 2
	first, second := sorted[:mid], sorted[mid:]

	meanFrequency := func(rows []domain.DailyMetricRecord) float64 {
		if len(rows) == 0 {
			return 0
		}
		var sum float64
		for _, r := range rows {
			sum += r.Frequency
		}
		return sum / float64(len(rows))
	}
	totalReach := func(rows []domain.DailyMetricRecord) float64 {
		var sum float64
		for _, r := range rows {
			sum += float64(r.Reach)
		}
		return sum
	}

	freqFirst, freqSecond := meanFrequency(first), meanFrequency(second)
	reachFirst, reachSecond := totalReach(first), totalReach(second)

	freqTrend := domain.HalfTrend{
		FirstHalf:  freqFirst,
		SecondHalf: freqSecond,
		ChangePct:  pctChange(freqFirst, freqSecond),
	}
	reachTrend := domain.HalfTrend{
		FirstHalf:  reachFirst,
		SecondHalf: reachSecond,
		ChangePct:  pctChange(reachFirst, reachSecond),
	}

	score := 0

	switch {
	case freqTrend.ChangePct > 20:
		score += 40
	case freqTrend.ChangePct > 10:
		score += 20
	}

	switch {
	case reachTrend.ChangePct < -10:
		score += 40
	case reachTrend.ChangePct < 0:
		score += 20
	}

	switch {
	case freqSecond > 5:
		score += 20
	case freqSecond > 3:
		score += 10
	}

	if score > 100 {
		score = 100
	}

	report := domain.SaturationReport{
		SaturationScore: score,
		FrequencyTrend:  freqTrend,
		ReachTrend:      reachTrend,
	}

	switch {
	case score >= 70:
		report.Status = domain.SaturationCritical
		report.Recommendation = "Audience is saturated: expand targeting or rotate in a new audience now"
	case score >= 40:
		report.Status = domain.SaturationWarning
		report.Recommendation = "Early saturation signals: prepare lookalike or interest expansions"
	default:
		report.Status = domain.SaturationHealthy
		report.Recommendation = "Audience still has headroom; no action needed"
	}

	if freqTrend.ChangePct > 0 {
		report.EstimatedDaysLeft = int(math.Max(0, math.Floor(float64(100-score)/5)))
	} else {
		report.EstimatedDaysLeft = 30
	}

	return report
}
