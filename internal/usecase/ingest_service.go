package usecase

import (
	"context"
	"fmt"
	"time"

	"adlens/internal/analysis"
	"adlens/internal/domain"
	"adlens/pkg/logger"
	"adlens/pkg/metrics"
)

// IngestService normalizes raw metric rows into records and moves them
// across the service boundary: in from the platform export, out to the
// report sink. Validation here is limited to what the engine cannot
// tolerate (unparseable dates); counts are stored as given.
type IngestService struct {
	recordRepo     domain.RecordRepository
	platformClient domain.PlatformClient
	sinkClient     domain.SinkClient
	insights       *InsightsService
	logger         *logger.Logger
	metrics        *metrics.Metrics
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	recordRepo domain.RecordRepository,
	platformClient domain.PlatformClient,
	sinkClient domain.SinkClient,
	insights *InsightsService,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *IngestService {
	return &IngestService{
		recordRepo:     recordRepo,
		platformClient: platformClient,
		sinkClient:     sinkClient,
		insights:       insights,
		logger:         logger,
		metrics:        metrics,
	}
}

// Exported rows arrive with dates in whichever format the platform's
// report builder was configured with.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// normalizeRows turns raw rows into records: parse the date, truncate
// to the UTC day, and compute frequency. Rows whose date cannot be
// parsed are skipped and counted, never fatal.
func (s *IngestService) normalizeRows(rows []domain.RawMetricRow) []domain.DailyMetricRecord {
	var records []domain.DailyMetricRecord

	for _, row := range rows {
		var date time.Time
		var err error
		for _, format := range dateFormats {
			date, err = time.Parse(format, row.Date)
			if err == nil {
				break
			}
		}

		if err != nil {
			s.logger.WithError(err).WithField("date", row.Date).Warn("Failed to parse row date, skipping")
			s.metrics.RecordIngestRowFailure("date_parse")
			continue
		}

		rec := domain.DailyMetricRecord{
			ClientID:     row.ClientID,
			CampaignID:   row.CampaignID,
			CampaignName: row.CampaignName,
			AdSetName:    row.AdSetName,
			AdName:       row.AdName,
			Date:         date.UTC().Truncate(24 * time.Hour),
			Impressions:  row.Impressions,
			Reach:        row.Reach,
			Clicks:       row.Clicks,
			Spend:        row.Spend,
			Results:      row.Results,
			ResultType:   row.ResultType,
		}
		if rec.Reach > 0 {
			rec.Frequency = float64(rec.Impressions) / float64(rec.Reach)
		}

		records = append(records, rec)
	}

	return records
}

// IngestRows normalizes and stores raw rows posted by a caller.
// Returns how many rows were accepted.
func (s *IngestService) IngestRows(ctx context.Context, rows []domain.RawMetricRow) (int, error) {
	log := s.logger.WithContext(ctx)
	log.WithField("rows", len(rows)).Info("Ingesting metric rows")

	records := s.normalizeRows(rows)
	if err := s.recordRepo.Store(ctx, records); err != nil {
		log.WithError(err).Error("Failed to store ingested records")
		return 0, fmt.Errorf("failed to store records: %w", err)
	}

	s.metrics.RecordIngestRows("push", len(records))
	log.WithFields(map[string]interface{}{
		"accepted": len(records),
		"skipped":  len(rows) - len(records),
	}).Info("Metric rows ingested")
	return len(records), nil
}

// PullFromPlatform fetches the configured export and ingests its rows.
func (s *IngestService) PullFromPlatform(ctx context.Context) (int, error) {
	start := time.Now()
	s.metrics.IncIngestJobsInProgress()
	defer s.metrics.DecIngestJobsInProgress()

	log := s.logger.WithContext(ctx)
	log.Info("Pulling metric rows from platform export")

	export, err := s.platformClient.FetchExport(ctx)
	if err != nil {
		s.metrics.RecordIngestJob("failed", time.Since(start))
		log.WithError(err).Error("Platform export fetch failed")
		return 0, fmt.Errorf("failed to fetch platform export: %w", err)
	}

	records := s.normalizeRows(export.Export.Rows)
	if err := s.recordRepo.Store(ctx, records); err != nil {
		s.metrics.RecordIngestJob("failed", time.Since(start))
		log.WithError(err).Error("Failed to store pulled records")
		return 0, fmt.Errorf("failed to store records: %w", err)
	}

	s.metrics.RecordIngestRows("pull", len(records))
	s.metrics.RecordIngestJob("success", time.Since(start))

	log.WithFields(map[string]interface{}{
		"duration": time.Since(start),
		"accepted": len(records),
		"skipped":  len(export.Export.Rows) - len(records),
	}).Info("Platform pull completed")
	return len(records), nil
}

// ExportClassifications generates a client's classification reports
// and pushes them to the sink, stamped with the account's latest
// record date.
func (s *IngestService) ExportClassifications(ctx context.Context, clientID string) error {
	log := s.logger.WithContext(ctx)
	log.WithField("client_id", clientID).Info("Exporting classification reports")

	reports, err := s.insights.AdClassifications(ctx, clientID)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		log.Warn("No ads to export for client")
		return fmt.Errorf("no ads found for client %s", clientID)
	}

	records, err := s.recordRepo.GetByClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to load records for client %s: %w", clientID, err)
	}
	rollups := analysis.AggregateByDate(records)
	asOf := rollups[len(rollups)-1].Date

	if err := s.sinkClient.ExportReports(ctx, reports, asOf); err != nil {
		s.metrics.RecordExportFailure()
		log.WithError(err).Error("Failed to export reports to sink")
		return fmt.Errorf("failed to export reports: %w", err)
	}

	s.metrics.RecordExport(len(reports))
	log.WithField("reports", len(reports)).Info("Classification reports exported")
	return nil
}
