package analysis

import (
	"fmt"

	"adlens/internal/domain"
)

// increaseEfficiency dampens result growth on budget increases to
// model diminishing returns. Decreases pass through 1:1.
const increaseEfficiency = 0.8

// SimulateBudgetChange projects results and cost-per-result after a
// signed percent budget change applied to the whole record set.
func SimulateBudgetChange(records []domain.DailyMetricRecord, changePct float64) domain.BudgetScenario {
	var currentSpend float64
	var currentResults int
	for _, rec := range records {
		currentSpend += rec.Spend
		currentResults += rec.Results
	}

	var currentCPR float64
	if currentResults > 0 {
		currentCPR = currentSpend / float64(currentResults)
	}

	efficiency := 1.0
	if changePct > 0 {
		efficiency = increaseEfficiency
	}

	projectedSpend := currentSpend * (1 + changePct/100)
	projectedResults := float64(currentResults) * (1 + changePct*efficiency/100)

	var projectedCPR float64
	if projectedResults > 0 {
		projectedCPR = projectedSpend / projectedResults
	}

	return domain.BudgetScenario{
		ChangePct:        changePct,
		CurrentSpend:     currentSpend,
		CurrentResults:   float64(currentResults),
		CurrentCPR:       currentCPR,
		ProjectedSpend:   projectedSpend,
		ProjectedResults: projectedResults,
		ProjectedCPR:     projectedCPR,
		EfficiencyFactor: efficiency,
	}
}

// SimulatePause projects pausing one ad and redistributing its spend
// across the rest of the account at the others' blended cost per
// result.
func SimulatePause(records []domain.DailyMetricRecord, adName string) domain.PauseScenario {
	paused, others := partition(records, func(r domain.DailyMetricRecord) bool {
		return r.AdName == adName
	})

	var pausedSpend float64
	var pausedResults int
	for _, rec := range paused {
		pausedSpend += rec.Spend
		pausedResults += rec.Results
	}

	pausedCPR := blendedCPR(paused)
	othersCPR := blendedCPR(others)

	scenario := domain.PauseScenario{
		AdName:        adName,
		PausedSpend:   pausedSpend,
		PausedResults: pausedResults,
		PausedCPR:     pausedCPR,
		OthersCPR:     othersCPR,
	}

	if othersCPR > 0 {
		scenario.RedistributedResults = pausedSpend / othersCPR
	}
	scenario.NetResultChange = scenario.RedistributedResults - float64(pausedResults)

	if othersCPR > 0 && othersCPR < pausedCPR {
		scenario.Verdict = domain.VerdictPause
		scenario.Message = fmt.Sprintf(
			"Pausing %q and respending its %.2f at the account's %.2f cost per result gains ~%.1f results",
			adName, pausedSpend, othersCPR, scenario.NetResultChange)
	} else {
		scenario.Verdict = domain.VerdictKeep
		scenario.Message = fmt.Sprintf(
			"%q converts at %.2f, no worse than the rest of the account (%.2f); keep it running",
			adName, pausedCPR, othersCPR)
	}

	return scenario
}
