package analysis

import "adlens/internal/domain"

// TrendMetric selects which derived metric a trend is computed over.
type TrendMetric int

const (
	MetricCTR TrendMetric = iota
	MetricCostPerResult
	MetricFrequency
)

func metricValue(rec domain.DailyMetricRecord, metric TrendMetric) float64 {
	switch metric {
	case MetricCTR:
		return rec.CTR()
	case MetricCostPerResult:
		return rec.CostPerResult()
	case MetricFrequency:
		return rec.Frequency
	}
	return 0
}

func windowMean(records []domain.DailyMetricRecord, metric TrendMetric) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range records {
		sum += metricValue(rec, metric)
	}
	return sum / float64(len(records))
}

// TrendPct compares the last 7 rows against the 7 rows before them and
// returns the signed percent change of the metric's window means.
// Windows are counted in rows, not calendar days; short sides use
// whatever rows exist. When the prior window's mean is 0 the all-time
// average stands in as the baseline, so a zero baseline never produces
// a spurious +/-100% trend; only when both recent and baseline are
// zero is the trend 0.
//
// Records must already be sorted chronologically (SortByDate).
func TrendPct(records []domain.DailyMetricRecord, metric TrendMetric) float64 {
	recentStart := len(records) - 7
	if recentStart < 0 {
		recentStart = 0
	}
	priorStart := recentStart - 7
	if priorStart < 0 {
		priorStart = 0
	}

	recentMean := windowMean(records[recentStart:], metric)
	priorMean := windowMean(records[priorStart:recentStart], metric)

	baseline := priorMean
	if baseline <= 0 {
		baseline = windowMean(records, metric)
	}
	if baseline <= 0 {
		return 0
	}

	return (recentMean - baseline) / baseline * 100
}
