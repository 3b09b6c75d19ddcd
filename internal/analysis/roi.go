package analysis

import "adlens/internal/domain"

// unmanagedCPRPenalty is the fixed modeling assumption that unmanaged
// spend would convert 25% worse than it does under active management.
const unmanagedCPRPenalty = 1.25

// roiDisclaimer is attached to every ROI report.
const roiDisclaimer = "Illustrative heuristic assuming unmanaged spend converts 25% worse; not a measured causal effect"

// EstimateROI values active management against the assumed-worse
// unmanaged baseline. perResultValue is the caller-configured value of
// one result.
func EstimateROI(records []domain.DailyMetricRecord, perResultValue float64) domain.ROIReport {
	var totalSpend float64
	var totalResults int
	for _, rec := range records {
		totalSpend += rec.Spend
		totalResults += rec.Results
	}

	report := domain.ROIReport{
		TotalSpend:     totalSpend,
		TotalResults:   totalResults,
		PerResultValue: perResultValue,
		Note:           roiDisclaimer,
	}

	if totalResults == 0 {
		return report
	}

	report.ActualCPR = totalSpend / float64(totalResults)
	report.UnoptimizedCPR = report.ActualCPR * unmanagedCPRPenalty
	if report.UnoptimizedCPR > 0 {
		report.ResultsAtUnoptimized = totalSpend / report.UnoptimizedCPR
	}
	report.ExtraResults = float64(totalResults) - report.ResultsAtUnoptimized
	report.EstimatedValue = report.ExtraResults * perResultValue

	return report
}
