package domain

import "time"

// AggregatedAdPerformance is the lifetime view of one ad, recomputed
// from records on every request and never persisted.
type AggregatedAdPerformance struct {
	ClientID     string `json:"client_id"`
	AdName       string `json:"ad_name"`
	AdSetName    string `json:"ad_set_name"`
	CampaignName string `json:"campaign_name"`

	TotalImpressions int     `json:"total_impressions"`
	TotalClicks      int     `json:"total_clicks"`
	TotalSpend       float64 `json:"total_spend"`
	TotalResults     int     `json:"total_results"`
	TotalReach       int     `json:"total_reach"`

	DaysRunning int       `json:"days_running"`
	FirstDate   time.Time `json:"first_date"`
	LastDate    time.Time `json:"last_date"`

	AvgCTR           float64 `json:"avg_ctr"`
	AvgCostPerResult float64 `json:"avg_cost_per_result"`
	AvgFrequency     float64 `json:"avg_frequency"`
}

// DailyRollup is the account-wide total for one calendar day.
type DailyRollup struct {
	Date        time.Time `json:"date"`
	Impressions int       `json:"impressions"`
	Reach       int       `json:"reach"`
	Clicks      int       `json:"clicks"`
	Spend       float64   `json:"spend"`
	Results     int       `json:"results"`
}

// Classification buckets an ad into one triage state.
type Classification string

const (
	ClassWinner           Classification = "WINNER"
	ClassScalable         Classification = "SCALABLE"
	ClassTesting          Classification = "TESTING"
	ClassFatigued         Classification = "FATIGUED"
	ClassPauseRecommended Classification = "PAUSE_RECOMMENDED"
)

// ClassificationReport is the fatigue engine's judgment of one ad.
type ClassificationReport struct {
	AggregatedAdPerformance

	Classification       Classification `json:"classification"`
	ClassificationReason string         `json:"classification_reason"`
	FatigueScore         int            `json:"fatigue_score"`
	CTRTrendPct          float64        `json:"ctr_trend_pct"`
	CPRTrendPct          float64        `json:"cpr_trend_pct"`
	FrequencyTrendPct    float64        `json:"frequency_trend_pct"`
	Recommendations      []string       `json:"recommendations"`
	PredictedDaysLeft    int            `json:"predicted_days_left"`
}

// PatternConfidence is the fixed confidence tier of a mined finding.
type PatternConfidence string

const (
	ConfidenceHigh   PatternConfidence = "HIGH"
	ConfidenceMedium PatternConfidence = "MEDIUM"
	ConfidenceLow    PatternConfidence = "LOW"
)

// PatternCategory names the dimension a contrast was mined on.
type PatternCategory string

const (
	CategoryFormat    PatternCategory = "FORMAT"
	CategoryCreative  PatternCategory = "CREATIVE"
	CategoryTiming    PatternCategory = "TIMING"
	CategoryMessaging PatternCategory = "MESSAGING"
	CategoryAudience  PatternCategory = "AUDIENCE"
)

// PatternFinding is one statistically suggestive group contrast.
type PatternFinding struct {
	Description       string            `json:"description"`
	ImpactDescription string            `json:"impact_description"`
	Confidence        PatternConfidence `json:"confidence"`
	Category          PatternCategory   `json:"category"`
	Recommendation    string            `json:"recommendation"`
}

// PacingStatus classifies month-to-date spend against elapsed time.
type PacingStatus string

const (
	PacingOnTrack       PacingStatus = "ON_TRACK"
	PacingUnderspending PacingStatus = "UNDERSPENDING"
	PacingOverspending  PacingStatus = "OVERSPENDING"
)

// BudgetPacingReport projects month-end spend for a client.
type BudgetPacingReport struct {
	MonthlyBudget            float64      `json:"monthly_budget"`
	SpentToDate              float64      `json:"spent_to_date"`
	PercentSpent             float64      `json:"percent_spent"`
	PercentOfMonthElapsed    float64      `json:"percent_of_month_elapsed"`
	ProjectedEndOfMonthSpend float64      `json:"projected_end_of_month_spend"`
	Status                   PacingStatus `json:"status"`
	DaysRemaining            int          `json:"days_remaining"`
	DaysUntilBudgetDepleted  int          `json:"days_until_budget_depleted,omitempty"`
	ProjectedSurplus         float64      `json:"projected_surplus,omitempty"`
	RecommendedDailyBudget   float64      `json:"recommended_daily_budget"`
	Message                  string       `json:"message"`
}

// SaturationStatus grades audience exhaustion.
type SaturationStatus string

const (
	SaturationHealthy  SaturationStatus = "HEALTHY"
	SaturationWarning  SaturationStatus = "WARNING"
	SaturationCritical SaturationStatus = "CRITICAL"
)

// HalfTrend compares the first and second halves of a date-sorted span.
type HalfTrend struct {
	FirstHalf  float64 `json:"first_half"`
	SecondHalf float64 `json:"second_half"`
	ChangePct  float64 `json:"change_pct"`
}

// SaturationReport flags frequency-up/reach-down audience exhaustion.
type SaturationReport struct {
	SaturationScore   int              `json:"saturation_score"`
	Status            SaturationStatus `json:"status"`
	FrequencyTrend    HalfTrend        `json:"frequency_trend"`
	ReachTrend        HalfTrend        `json:"reach_trend"`
	EstimatedDaysLeft int              `json:"estimated_days_left"`
	Recommendation    string           `json:"recommendation"`
}

// QualityStatus says whether the account's data can be trusted at all.
type QualityStatus string

const (
	QualityReady        QualityStatus = "READY"
	QualityLimited      QualityStatus = "LIMITED"
	QualityInsufficient QualityStatus = "INSUFFICIENT"
)

// QualityIssue is one recorded deduction from the quality score.
type QualityIssue struct {
	Issue       string `json:"issue"`
	Detail      string `json:"detail"`
	ScoreImpact int    `json:"score_impact"`
}

// DataSummary carries the raw counts the quality score was judged on.
type DataSummary struct {
	Days        int `json:"days"`
	Impressions int `json:"impressions"`
	Results     int `json:"results"`
	DistinctAds int `json:"distinct_ads"`
}

// QualityReport judges whether there is enough data to trust the
// other reports.
type QualityReport struct {
	Score       int            `json:"score"`
	Status      QualityStatus  `json:"status"`
	Issues      []QualityIssue `json:"issues"`
	DataSummary DataSummary    `json:"data_summary"`
}

// ConcentrationRisk grades dependence on few ads.
type ConcentrationRisk string

const (
	RiskLow      ConcentrationRisk = "LOW"
	RiskMedium   ConcentrationRisk = "MEDIUM"
	RiskHigh     ConcentrationRisk = "HIGH"
	RiskCritical ConcentrationRisk = "CRITICAL"
)

// AdShare is one ad's portion of the account's total results.
type AdShare struct {
	AdName   string  `json:"ad_name"`
	Results  int     `json:"results"`
	SharePct float64 `json:"share_pct"`
}

// ConcentrationReport measures how much of total results the top ads
// produce.
type ConcentrationReport struct {
	TotalResults   int               `json:"total_results"`
	TopAdName      string            `json:"top_ad_name"`
	TopAdSharePct  float64           `json:"top_ad_share_pct"`
	Top3SharePct   float64           `json:"top3_share_pct"`
	Shares         []AdShare         `json:"shares"`
	Risk           ConcentrationRisk `json:"risk"`
	Message        string            `json:"message"`
	Recommendation string            `json:"recommendation"`
}

// BudgetScenario projects the effect of a signed budget change.
type BudgetScenario struct {
	ChangePct        float64 `json:"change_pct"`
	CurrentSpend     float64 `json:"current_spend"`
	CurrentResults   float64 `json:"current_results"`
	CurrentCPR       float64 `json:"current_cpr"`
	ProjectedSpend   float64 `json:"projected_spend"`
	ProjectedResults float64 `json:"projected_results"`
	ProjectedCPR     float64 `json:"projected_cpr"`
	EfficiencyFactor float64 `json:"efficiency_factor"`
}

// PauseVerdict is the pause simulator's recommendation.
type PauseVerdict string

const (
	VerdictPause PauseVerdict = "PAUSE"
	VerdictKeep  PauseVerdict = "KEEP"
)

// PauseScenario projects redistributing one ad's spend across the rest
// of the account.
type PauseScenario struct {
	AdName               string       `json:"ad_name"`
	PausedSpend          float64      `json:"paused_spend"`
	PausedResults        int          `json:"paused_results"`
	PausedCPR            float64      `json:"paused_cpr"`
	OthersCPR            float64      `json:"others_cpr"`
	RedistributedResults float64      `json:"redistributed_results"`
	NetResultChange      float64      `json:"net_result_change"`
	Verdict              PauseVerdict `json:"verdict"`
	Message              string       `json:"message"`
}

// ROIReport estimates the value created by active management against
// an assumed-worse unmanaged baseline. The estimate is heuristic, not
// a measured causal effect; Note says so to every caller.
type ROIReport struct {
	TotalSpend           float64 `json:"total_spend"`
	TotalResults         int     `json:"total_results"`
	ActualCPR            float64 `json:"actual_cpr"`
	UnoptimizedCPR       float64 `json:"unoptimized_cpr"`
	ResultsAtUnoptimized float64 `json:"results_at_unoptimized"`
	ExtraResults         float64 `json:"extra_results"`
	PerResultValue       float64 `json:"per_result_value"`
	EstimatedValue       float64 `json:"estimated_value"`
	Note                 string  `json:"note"`
}
