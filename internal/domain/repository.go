package domain

import (
	"context"
	"time"
)

// RecordRepository stores ingested daily metric records. Reads return
// copies; callers must never mutate what the engine is analyzing.
type RecordRepository interface {
	Store(ctx context.Context, records []DailyMetricRecord) error
	GetByClient(ctx context.Context, clientID string) ([]DailyMetricRecord, error)
	GetByClientAndRange(ctx context.Context, clientID string, from, to time.Time) ([]DailyMetricRecord, error)
}

// BudgetRepository stores stated monthly campaign budgets.
type BudgetRepository interface {
	Upsert(ctx context.Context, budgets []CampaignBudget) error
	GetActiveByClient(ctx context.Context, clientID string) ([]CampaignBudget, error)
}

// PlatformClient pulls metric rows from the ad platform's export
// endpoint.
type PlatformClient interface {
	FetchExport(ctx context.Context) (*PlatformExport, error)
}

// SinkClient pushes generated reports to an external sink.
type SinkClient interface {
	ExportReports(ctx context.Context, reports []ClassificationReport, date time.Time) error
}
