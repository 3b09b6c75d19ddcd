package analysis

import (
	"testing"
	"time"

	"adlens/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedRow(adName string, date time.Time, spend float64, results int) domain.DailyMetricRecord {
	return domain.DailyMetricRecord{
		ClientID:    "acme",
		AdName:      adName,
		Date:        date,
		Impressions: 1000,
		Reach:       800,
		Clicks:      10,
		Spend:       spend,
		Results:     results,
	}
}

func findByCategory(findings []domain.PatternFinding, cat domain.PatternCategory) *domain.PatternFinding {
	for i := range findings {
		if findings[i].Category == cat {
			return &findings[i]
		}
	}
	return nil
}

func TestMinePatterns_RequiresTenRows(t *testing.T) {
	var records []domain.DailyMetricRecord
	for i := 0; i < 9; i++ {
		records = append(records, namedRow("Video A", day(i+1), 10, 1))
	}

	assert.Empty(t, MinePatterns(records))
}

func TestMinePatterns_FormatContrast(t *testing.T) {
	var records []domain.DailyMetricRecord
	// Video CPR 5, static CPR 10: 5 < 0.85*10 fires.
	for i := 0; i < 5; i++ {
		records = append(records, namedRow("Video Hook", day(i+1), 10, 2))
		records = append(records, namedRow("Static Banner", day(i+1), 10, 1))
	}

	findings := MinePatterns(records)
	finding := findByCategory(findings, domain.CategoryFormat)
	require.NotNil(t, finding)
	assert.Equal(t, domain.ConfidenceHigh, finding.Confidence)
	assert.Contains(t, finding.Description, "Video")
}

func TestMinePatterns_FormatBelowThresholdIsQuiet(t *testing.T) {
	var records []domain.DailyMetricRecord
	// Video CPR 9 vs static CPR 10: 9 >= 0.85*10, no finding.
	for i := 0; i < 5; i++ {
		records = append(records, namedRow("Video Hook", day(i+1), 18, 2))
		records = append(records, namedRow("Static Banner", day(i+1), 10, 1))
	}

	assert.Nil(t, findByCategory(MinePatterns(records), domain.CategoryFormat))
}

func TestMinePatterns_TimingContrast(t *testing.T) {
	var records []domain.DailyMetricRecord
	// 2026-06-06 is a Saturday, 2026-06-07 a Sunday.
	sat, sun := day(6), day(7)
	records = append(records,
		namedRow("Plain Ad", sat, 10, 4),
		namedRow("Plain Ad", sun, 10, 4),
		namedRow("Plain Ad", sat.AddDate(0, 0, 7), 10, 4),
	)
	// Weekdays: 2026-06-01 (Mon) onward, CPR 10.
	for i := 1; i <= 5; i++ {
		records = append(records, namedRow("Plain Ad", day(i), 10, 1))
	}
	// Pad to 10+ rows with more weekdays.
	for i := 8; i <= 12; i++ {
		records = append(records, namedRow("Plain Ad", day(i), 10, 1))
	}

	findings := MinePatterns(records)
	finding := findByCategory(findings, domain.CategoryTiming)
	require.NotNil(t, finding)
	assert.Equal(t, domain.ConfidenceMedium, finding.Confidence)
}

func TestMinePatterns_MessagingContrast(t *testing.T) {
	var records []domain.DailyMetricRecord
	// Promo CPR 2 vs non-promo CPR 10: 2 < 0.8*10 fires.
	for i := 0; i < 3; i++ {
		records = append(records, namedRow("Spring Sale Ad", day(i+1), 10, 5))
	}
	for i := 0; i < 7; i++ {
		records = append(records, namedRow("Brand Story", day(i+1), 10, 1))
	}

	findings := MinePatterns(records)
	finding := findByCategory(findings, domain.CategoryMessaging)
	require.NotNil(t, finding)
	assert.Equal(t, domain.ConfidenceHigh, finding.Confidence)
}

func TestMinePatterns_CreativeContrast(t *testing.T) {
	var records []domain.DailyMetricRecord
	// Testimonial CPR 2; overall CPR pulled up by the rest.
	for i := 0; i < 3; i++ {
		records = append(records, namedRow("Customer Testimonial", day(i+1), 10, 5))
	}
	for i := 0; i < 7; i++ {
		records = append(records, namedRow("Brand Story", day(i+1), 10, 1))
	}

	findings := MinePatterns(records)
	finding := findByCategory(findings, domain.CategoryCreative)
	require.NotNil(t, finding)
	assert.Equal(t, domain.ConfidenceHigh, finding.Confidence)
}

func TestMinePatterns_NoResultsNoFindings(t *testing.T) {
	// Zero results on both sides must not fire any contrast.
	var records []domain.DailyMetricRecord
	for i := 0; i < 6; i++ {
		records = append(records, namedRow("Video Hook", day(i+1), 10, 0))
		records = append(records, namedRow("Static Banner", day(i+1), 10, 0))
	}

	assert.Empty(t, MinePatterns(records))
}
