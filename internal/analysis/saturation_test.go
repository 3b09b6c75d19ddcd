package analysis

import (
	"testing"

	"adlens/internal/domain"

	"github.com/stretchr/testify/assert"
)

func saturationRow(d int, frequency float64, reach int) domain.DailyMetricRecord {
	return domain.DailyMetricRecord{
		ClientID:  "acme",
		AdName:    "Video A",
		Date:      day(d),
		Reach:     reach,
		Frequency: frequency,
	}
}

func TestScoreSaturation_InsufficientData(t *testing.T) {
	var records []domain.DailyMetricRecord
	for d := 1; d <= 13; d++ {
		records = append(records, saturationRow(d, 8, 100))
	}

	report := ScoreSaturation(records)
	assert.Equal(t, domain.SaturationHealthy, report.Status)
	assert.Zero(t, report.SaturationScore)
	assert.Equal(t, 30, report.EstimatedDaysLeft)
	assert.Contains(t, report.Recommendation, "Not enough data")
}

func TestScoreSaturation_Critical(t *testing.T) {
	var records []domain.DailyMetricRecord
	// First half: frequency 2, reach 1000/day. Second half: frequency 6,
	// reach 500/day. Frequency +200% (+40), reach -50% (+40), absolute
	// second-half frequency >5 (+20) = 100.
	for d := 1; d <= 7; d++ {
		records = append(records, saturationRow(d, 2, 1000))
	}
	for d := 8; d <= 14; d++ {
		records = append(records, saturationRow(d, 6, 500))
	}

	report := ScoreSaturation(records)
	assert.Equal(t, 100, report.SaturationScore)
	assert.Equal(t, domain.SaturationCritical, report.Status)
	assert.Equal(t, 0, report.EstimatedDaysLeft)
	assert.InDelta(t, 200, report.FrequencyTrend.ChangePct, 1e-9)
	assert.InDelta(t, -50, report.ReachTrend.ChangePct, 1e-9)
}

func TestScoreSaturation_Warning(t *testing.T) {
	var records []domain.DailyMetricRecord
	// Frequency +15% (+20), reach -5% (+20), second half frequency 3.45
	// (+10) = 50.
	for d := 1; d <= 7; d++ {
		records = append(records, saturationRow(d, 3.0, 1000))
	}
	for d := 8; d <= 14; d++ {
		records = append(records, saturationRow(d, 3.45, 950))
	}

	report := ScoreSaturation(records)
	assert.Equal(t, 50, report.SaturationScore)
	assert.Equal(t, domain.SaturationWarning, report.Status)
	// frequency rising: (100-50)/5 = 10 days left
	assert.Equal(t, 10, report.EstimatedDaysLeft)
}

func TestScoreSaturation_HealthyWithFallingFrequency(t *testing.T) {
	var records []domain.DailyMetricRecord
	for d := 1; d <= 7; d++ {
		records = append(records, saturationRow(d, 3.0, 1000))
	}
	for d := 8; d <= 14; d++ {
		records = append(records, saturationRow(d, 2.0, 1100))
	}

	report := ScoreSaturation(records)
	assert.Equal(t, domain.SaturationHealthy, report.Status)
	assert.Equal(t, 30, report.EstimatedDaysLeft, "falling frequency uses the fixed default")
}
