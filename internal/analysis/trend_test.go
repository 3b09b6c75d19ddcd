package analysis

import (
	"testing"

	"adlens/internal/domain"

	"github.com/stretchr/testify/assert"
)

// ctrRow builds a record whose CTR equals ctrPct.
func ctrRow(d int, ctrPct float64) domain.DailyMetricRecord {
	rec := record("Video A", d, 1000, 800, 0, 10, 1)
	rec.Clicks = int(ctrPct * 10) // clicks/1000*100 == ctrPct
	return rec
}

func TestTrendPct_SevenVsSeven(t *testing.T) {
	var records []domain.DailyMetricRecord
	for d := 1; d <= 7; d++ {
		records = append(records, ctrRow(d, 2.0))
	}
	for d := 8; d <= 14; d++ {
		records = append(records, ctrRow(d, 1.0))
	}

	// CTR halved: -50%
	assert.InDelta(t, -50, TrendPct(records, MetricCTR), 1e-9)
}

func TestTrendPct_ShortWindows(t *testing.T) {
	// 10 rows: prior window only has 3 rows, which is fine.
	var records []domain.DailyMetricRecord
	for d := 1; d <= 3; d++ {
		records = append(records, ctrRow(d, 1.0))
	}
	for d := 4; d <= 10; d++ {
		records = append(records, ctrRow(d, 1.5))
	}

	assert.InDelta(t, 50, TrendPct(records, MetricCTR), 1e-9)
}

func TestTrendPct_ZeroPriorFallsBackToAllTimeAverage(t *testing.T) {
	// Prior window is all zero CTR; the all-time average becomes the
	// baseline instead of reporting a degenerate trend off zero.
	var records []domain.DailyMetricRecord
	for d := 1; d <= 7; d++ {
		records = append(records, ctrRow(d, 0))
	}
	for d := 8; d <= 14; d++ {
		records = append(records, ctrRow(d, 2.0))
	}

	// All-time mean = 1.0, recent mean = 2.0 -> +100%
	assert.InDelta(t, 100, TrendPct(records, MetricCTR), 1e-9)
}

func TestTrendPct_AllZeroIsZero(t *testing.T) {
	var records []domain.DailyMetricRecord
	for d := 1; d <= 14; d++ {
		records = append(records, ctrRow(d, 0))
	}

	assert.Zero(t, TrendPct(records, MetricCTR))
}

func TestTrendPct_EmptyInput(t *testing.T) {
	assert.Zero(t, TrendPct(nil, MetricCTR))
	assert.Zero(t, TrendPct(nil, MetricCostPerResult))
	assert.Zero(t, TrendPct(nil, MetricFrequency))
}

func TestTrendPct_CostPerResult(t *testing.T) {
	var records []domain.DailyMetricRecord
	for d := 1; d <= 7; d++ {
		records = append(records, record("Video A", d, 1000, 800, 10, 10, 2)) // CPR 5
	}
	for d := 8; d <= 14; d++ {
		records = append(records, record("Video A", d, 1000, 800, 10, 20, 2)) // CPR 10
	}

	assert.InDelta(t, 100, TrendPct(records, MetricCostPerResult), 1e-9)
}
