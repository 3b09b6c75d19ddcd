package analysis

import (
	"fmt"
	"math"
	"time"

	"adlens/internal/domain"
)

// Pacing ratio bands. Both boundaries are strict: exactly 1.15 is
// still on track, exactly 0.85 is still on track.
const (
	overspendRatio  = 1.15
	underspendRatio = 0.85
)

// ProjectPacing projects month-end spend for a client from elapsed
// time and month-to-date spend. budgets supplies the stated monthly
// budgets of the client's active campaigns; monthRecords must already
// be limited to the current month; now fixes the calendar.
func ProjectPacing(budgets []domain.CampaignBudget, monthRecords []domain.DailyMetricRecord, now time.Time) domain.BudgetPacingReport {
	var totalBudget float64
	for _, b := range budgets {
		if b.Active {
			totalBudget += b.MonthlyBudget
		}
	}

	var spentToDate float64
	for _, rec := range monthRecords {
		spentToDate += rec.Spend
	}

	dayOfMonth := now.Day()
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	daysRemaining := daysInMonth - dayOfMonth

	percentOfMonthElapsed := float64(dayOfMonth) / float64(daysInMonth) * 100

	var percentSpent float64
	if totalBudget > 0 {
		percentSpent = spentToDate / totalBudget * 100
	}

	var projected float64
	if dayOfMonth > 0 {
		projected = spentToDate / float64(dayOfMonth) * float64(daysInMonth)
	}

	report := domain.BudgetPacingReport{
		MonthlyBudget:            totalBudget,
		SpentToDate:              spentToDate,
		PercentSpent:             percentSpent,
		PercentOfMonthElapsed:    percentOfMonthElapsed,
		ProjectedEndOfMonthSpend: projected,
		DaysRemaining:            daysRemaining,
	}

	if daysRemaining > 0 {
		report.RecommendedDailyBudget = (totalBudget - spentToDate) / float64(daysRemaining)
	}

	var pacingRatio float64
	if percentOfMonthElapsed > 0 {
		pacingRatio = percentSpent / percentOfMonthElapsed
	}

	switch {
	case pacingRatio > overspendRatio:
		report.Status = domain.PacingOverspending
		dailyRate := spentToDate / float64(dayOfMonth)
		if dailyRate > 0 {
			report.DaysUntilBudgetDepleted = int(math.Floor((totalBudget - spentToDate) / dailyRate))
		}
		report.Message = fmt.Sprintf(
			"Spending %.0f%% of budget with %.0f%% of the month elapsed; budget depletes in ~%d days at the current rate",
			percentSpent, percentOfMonthElapsed, report.DaysUntilBudgetDepleted)

	case pacingRatio < underspendRatio:
		report.Status = domain.PacingUnderspending
		report.ProjectedSurplus = totalBudget - projected
		report.Message = fmt.Sprintf(
			"Only %.0f%% of budget spent with %.0f%% of the month elapsed; projecting a %.2f surplus",
			percentSpent, percentOfMonthElapsed, report.ProjectedSurplus)

	default:
		report.Status = domain.PacingOnTrack
		report.Message = fmt.Sprintf(
			"Pacing is healthy: %.0f%% spent against %.0f%% of the month elapsed",
			percentSpent, percentOfMonthElapsed)
	}

	return report
}
