package analysis

import (
	"fmt"
	"strings"
	"time"

	"adlens/internal/domain"
)

// minPatternRows is the floor below which no contrast is attempted.
const minPatternRows = 10

// promoKeywords mark urgency/offer messaging in ad names.
var promoKeywords = []string{
	"sale", "discount", "promo", "off", "offer", "limited", "free",
	"now", "today", "last chance",
}

func nameContains(rec domain.DailyMetricRecord, substr string) bool {
	return strings.Contains(strings.ToLower(rec.AdName), substr)
}

func isPromo(rec domain.DailyMetricRecord) bool {
	name := strings.ToLower(rec.AdName)
	for _, kw := range promoKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func isWeekend(rec domain.DailyMetricRecord) bool {
	day := rec.Date.Weekday()
	return day == time.Saturday || day == time.Sunday
}

func partition(records []domain.DailyMetricRecord, pred func(domain.DailyMetricRecord) bool) (in, out []domain.DailyMetricRecord) {
	for _, rec := range records {
		if pred(rec) {
			in = append(in, rec)
		} else {
			out = append(out, rec)
		}
	}
	return in, out
}

// MinePatterns runs four independent group contrasts over a client's
// rows and reports the ones that clear their ratio threshold. Each
// contrast needs a minimum sample on both sides and positive blended
// cost-per-result on both sides before it is allowed to fire; zero,
// some, or all four findings may come back.
func MinePatterns(records []domain.DailyMetricRecord) []domain.PatternFinding {
	findings := []domain.PatternFinding{}
	if len(records) < minPatternRows {
		return findings
	}

	// Format: video creatives vs everything else
	video, other := partition(records, func(r domain.DailyMetricRecord) bool {
		return nameContains(r, "video")
	})
	if len(video) >= 5 && len(other) >= 5 {
		videoCPR, otherCPR := blendedCPR(video), blendedCPR(other)
		if videoCPR > 0 && otherCPR > 0 && videoCPR < 0.85*otherCPR {
			findings = append(findings, domain.PatternFinding{
				Description: "Video creatives outperform non-video creatives",
				ImpactDescription: fmt.Sprintf(
					"Video cost per result %.2f vs %.2f elsewhere (%.0f%% cheaper)",
					videoCPR, otherCPR, (1-videoCPR/otherCPR)*100),
				Confidence:     domain.ConfidenceHigh,
				Category:       domain.CategoryFormat,
				Recommendation: "Shift budget toward video formats and brief more video variants",
			})
		}
	}

	// Timing: weekend vs weekday delivery
	weekend, weekday := partition(records, isWeekend)
	if len(weekend) >= 3 && len(weekday) >= 5 {
		weekendCPR, weekdayCPR := blendedCPR(weekend), blendedCPR(weekday)
		if weekendCPR > 0 && weekdayCPR > 0 && weekendCPR < 0.85*weekdayCPR {
			findings = append(findings, domain.PatternFinding{
				Description: "Weekend delivery converts more cheaply than weekdays",
				ImpactDescription: fmt.Sprintf(
					"Weekend cost per result %.2f vs %.2f on weekdays",
					weekendCPR, weekdayCPR),
				Confidence:     domain.ConfidenceMedium,
				Category:       domain.CategoryTiming,
				Recommendation: "Raise weekend budget caps or add weekend dayparting",
			})
		}
	}

	// Messaging: promo/urgency wording vs the rest
	promo, nonPromo := partition(records, isPromo)
	if len(promo) >= 3 && len(nonPromo) >= 3 {
		promoCPR, nonPromoCPR := blendedCPR(promo), blendedCPR(nonPromo)
		if promoCPR > 0 && nonPromoCPR > 0 && promoCPR < 0.8*nonPromoCPR {
			findings = append(findings, domain.PatternFinding{
				Description: "Promotional/urgency messaging beats evergreen copy",
				ImpactDescription: fmt.Sprintf(
					"Promo cost per result %.2f vs %.2f for non-promo copy",
					promoCPR, nonPromoCPR),
				Confidence:     domain.ConfidenceHigh,
				Category:       domain.CategoryMessaging,
				Recommendation: "Test urgency hooks on the evergreen creatives",
			})
		}
	}

	// Creative: testimonial creatives vs the overall average
	testimonial, _ := partition(records, func(r domain.DailyMetricRecord) bool {
		return nameContains(r, "testimonial")
	})
	if len(testimonial) >= 3 {
		testimonialCPR, overallCPR := blendedCPR(testimonial), blendedCPR(records)
		if testimonialCPR > 0 && overallCPR > 0 && testimonialCPR < 0.9*overallCPR {
			findings = append(findings, domain.PatternFinding{
				Description: "Testimonial creatives run below the account average cost per result",
				ImpactDescription: fmt.Sprintf(
					"Testimonial cost per result %.2f vs %.2f account-wide",
					testimonialCPR, overallCPR),
				Confidence:     domain.ConfidenceHigh,
				Category:       domain.CategoryCreative,
				Recommendation: "Collect more customer testimonials and produce variants",
			})
		}
	}

	return findings
}
