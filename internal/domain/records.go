package domain

import "time"

// DailyMetricRecord is one day of delivery data for one ad. It is the
// atomic input of every report; records are immutable once ingested.
type DailyMetricRecord struct {
	ClientID     string    `json:"client_id"`
	CampaignID   string    `json:"campaign_id"`
	CampaignName string    `json:"campaign_name"`
	AdSetName    string    `json:"ad_set_name"`
	AdName       string    `json:"ad_name"`
	Date         time.Time `json:"date"`
	Impressions  int       `json:"impressions"`
	Reach        int       `json:"reach"`
	Clicks       int       `json:"clicks"`
	Spend        float64   `json:"spend"`
	Results      int       `json:"results"`
	ResultType   string    `json:"result_type"`
	Frequency    float64   `json:"frequency"`
}

// CTR returns clicks/impressions as a percentage, 0 when there are no
// impressions.
func (r DailyMetricRecord) CTR() float64 {
	if r.Impressions == 0 {
		return 0
	}
	return float64(r.Clicks) / float64(r.Impressions) * 100
}

// CostPerResult returns spend/results, 0 when there are no results.
func (r DailyMetricRecord) CostPerResult() float64 {
	if r.Results == 0 {
		return 0
	}
	return r.Spend / float64(r.Results)
}

// RawMetricRow is the wire shape of an ingested row. Dates arrive as
// strings in whatever format the exporting platform uses.
type RawMetricRow struct {
	ClientID     string  `json:"client_id"`
	CampaignID   string  `json:"campaign_id"`
	CampaignName string  `json:"campaign_name"`
	AdSetName    string  `json:"ad_set_name"`
	AdName       string  `json:"ad_name"`
	Date         string  `json:"date"`
	Impressions  int     `json:"impressions"`
	Reach        int     `json:"reach"`
	Clicks       int     `json:"clicks"`
	Spend        float64 `json:"spend"`
	Results      int     `json:"results"`
	ResultType   string  `json:"result_type"`
}

// Export is the row envelope inside a platform export payload.
type Export struct {
	Rows []RawMetricRow `json:"rows"`
}

// PlatformExport is the envelope returned by the ad platform's export
// endpoint.
type PlatformExport struct {
	Export Export `json:"export"`
}

// CampaignBudget is a client's stated monthly budget for one campaign.
type CampaignBudget struct {
	ClientID      string  `json:"client_id"`
	CampaignID    string  `json:"campaign_id"`
	CampaignName  string  `json:"campaign_name"`
	MonthlyBudget float64 `json:"monthly_budget"`
	Active        bool    `json:"active"`
}

// AdKey identifies one creative within a client account. Ads are keyed
// by name rather than ad set because the same creative is commonly
// reused across ad sets.
type AdKey struct {
	ClientID string
	AdName   string
}

func (k AdKey) String() string {
	return k.ClientID + "|" + k.AdName
}
