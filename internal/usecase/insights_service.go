package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"adlens/internal/analysis"
	"adlens/internal/domain"
	"adlens/pkg/logger"
	"adlens/pkg/metrics"
)

// InsightsService serves the decision-engine reports. It only loads
// record snapshots from the repository and hands them to the pure
// analysis functions; all judgment lives in internal/analysis.
type InsightsService struct {
	recordRepo domain.RecordRepository
	budgetRepo domain.BudgetRepository
	logger     *logger.Logger
	metrics    *metrics.Metrics
	workerPool int
}

// NewInsightsService creates a new insights service.
func NewInsightsService(
	recordRepo domain.RecordRepository,
	budgetRepo domain.BudgetRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	workerPool int,
) *InsightsService {
	if workerPool < 1 {
		workerPool = 1
	}
	return &InsightsService{
		recordRepo: recordRepo,
		budgetRepo: budgetRepo,
		logger:     logger,
		metrics:    metrics,
		workerPool: workerPool,
	}
}

func (s *InsightsService) clientRecords(ctx context.Context, clientID string) ([]domain.DailyMetricRecord, error) {
	records, err := s.recordRepo.GetByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for client %s: %w", clientID, err)
	}
	return records, nil
}

// AdClassifications aggregates every ad of a client, computes its
// trends, and classifies it. Ads are scored concurrently since each
// classification is independent of the others.
func (s *InsightsService) AdClassifications(ctx context.Context, clientID string) ([]domain.ClassificationReport, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithField("client_id", clientID).Info("Generating ad classifications")

	records, err := s.clientRecords(ctx, clientID)
	if err != nil {
		log.WithError(err).Error("Failed to load records for classification")
		return nil, err
	}

	aggregates := analysis.Aggregate(records)

	byAd := make(map[string][]domain.DailyMetricRecord)
	for _, rec := range records {
		byAd[rec.AdName] = append(byAd[rec.AdName], rec)
	}

	jobs := make(chan int, len(aggregates))
	reports := make([]domain.ClassificationReport, len(aggregates))

	var wg sync.WaitGroup
	for i := 0; i < s.workerPool; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				perf := aggregates[idx]
				trends := analysis.TrendsForAd(byAd[perf.AdName])
				reports[idx] = analysis.Classify(perf, trends)
			}
		}()
	}

	for i := range aggregates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	s.metrics.RecordReport("classifications", time.Since(start))
	log.WithField("ads", len(reports)).Info("Ad classifications generated")
	return reports, nil
}

// PatternFindings mines group contrasts for a client.
func (s *InsightsService) PatternFindings(ctx context.Context, clientID string) ([]domain.PatternFinding, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithField("client_id", clientID).Info("Mining patterns")

	records, err := s.clientRecords(ctx, clientID)
	if err != nil {
		log.WithError(err).Error("Failed to load records for pattern mining")
		return nil, err
	}

	findings := analysis.MinePatterns(records)

	s.metrics.RecordReport("patterns", time.Since(start))
	log.WithField("findings", len(findings)).Info("Pattern mining completed")
	return findings, nil
}

// BudgetPacing projects month-end spend for a client against its
// active campaign budgets. now fixes the calendar for determinism.
func (s *InsightsService) BudgetPacing(ctx context.Context, clientID string, now time.Time) (*domain.BudgetPacingReport, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithField("client_id", clientID).Info("Projecting budget pacing")

	budgets, err := s.budgetRepo.GetActiveByClient(ctx, clientID)
	if err != nil {
		log.WithError(err).Error("Failed to load budgets for pacing")
		return nil, fmt.Errorf("failed to load budgets for client %s: %w", clientID, err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthRecords, err := s.recordRepo.GetByClientAndRange(ctx, clientID, monthStart, now)
	if err != nil {
		log.WithError(err).Error("Failed to load month records for pacing")
		return nil, fmt.Errorf("failed to load month records for client %s: %w", clientID, err)
	}

	report := analysis.ProjectPacing(budgets, monthRecords, now)

	s.metrics.RecordReport("pacing", time.Since(start))
	log.WithField("status", report.Status).Info("Budget pacing projected")
	return &report, nil
}

// Saturation scores audience exhaustion for a client.
func (s *InsightsService) Saturation(ctx context.Context, clientID string) (*domain.SaturationReport, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithField("client_id", clientID).Info("Scoring audience saturation")

	records, err := s.clientRecords(ctx, clientID)
	if err != nil {
		log.WithError(err).Error("Failed to load records for saturation")
		return nil, err
	}

	report := analysis.ScoreSaturation(records)

	s.metrics.RecordReport("saturation", time.Since(start))
	log.WithField("status", report.Status).Info("Saturation scored")
	return &report, nil
}

// Quality judges whether the client's data is sufficient to trust the
// other reports.
func (s *InsightsService) Quality(ctx context.Context, clientID string) (*domain.QualityReport, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithField("client_id", clientID).Info("Scoring data quality")

	records, err := s.clientRecords(ctx, clientID)
	if err != nil {
		log.WithError(err).Error("Failed to load records for quality scoring")
		return nil, err
	}

	report := analysis.ScoreQuality(records)

	s.metrics.RecordReport("quality", time.Since(start))
	log.WithFields(map[string]interface{}{
		"score":  report.Score,
		"status": report.Status,
	}).Info("Data quality scored")
	return &report, nil
}

// Concentration measures the client's dependence on its top ads.
func (s *InsightsService) Concentration(ctx context.Context, clientID string) (*domain.ConcentrationReport, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithField("client_id", clientID).Info("Analyzing result concentration")

	records, err := s.clientRecords(ctx, clientID)
	if err != nil {
		log.WithError(err).Error("Failed to load records for concentration analysis")
		return nil, err
	}

	report := analysis.AnalyzeConcentration(records)

	s.metrics.RecordReport("concentration", time.Since(start))
	log.WithField("risk", report.Risk).Info("Concentration analyzed")
	return &report, nil
}

// SimulateBudgetChange projects a signed percent budget change for a
// client.
func (s *InsightsService) SimulateBudgetChange(ctx context.Context, clientID string, changePct float64) (*domain.BudgetScenario, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithFields(map[string]interface{}{
		"client_id":  clientID,
		"change_pct": changePct,
	}).Info("Simulating budget change")

	records, err := s.clientRecords(ctx, clientID)
	if err != nil {
		log.WithError(err).Error("Failed to load records for budget simulation")
		return nil, err
	}

	scenario := analysis.SimulateBudgetChange(records, changePct)

	s.metrics.RecordReport("budget_scenario", time.Since(start))
	return &scenario, nil
}

// SimulatePauseAd projects pausing one named ad and redistributing its
// spend.
func (s *InsightsService) SimulatePauseAd(ctx context.Context, clientID, adName string) (*domain.PauseScenario, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithFields(map[string]interface{}{
		"client_id": clientID,
		"ad_name":   adName,
	}).Info("Simulating ad pause")

	records, err := s.clientRecords(ctx, clientID)
	if err != nil {
		log.WithError(err).Error("Failed to load records for pause simulation")
		return nil, err
	}

	scenario := analysis.SimulatePause(records, adName)

	s.metrics.RecordReport("pause_scenario", time.Since(start))
	log.WithField("verdict", scenario.Verdict).Info("Pause simulation completed")
	return &scenario, nil
}

// AgencyROI estimates the value of active management for a client.
func (s *InsightsService) AgencyROI(ctx context.Context, clientID string, perResultValue float64) (*domain.ROIReport, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)
	log.WithField("client_id", clientID).Info("Estimating agency ROI")

	records, err := s.clientRecords(ctx, clientID)
	if err != nil {
		log.WithError(err).Error("Failed to load records for ROI estimate")
		return nil, err
	}

	report := analysis.EstimateROI(records, perResultValue)

	s.metrics.RecordReport("roi", time.Since(start))
	return &report, nil
}

// SetBudgets upserts a client's stated campaign budgets.
func (s *InsightsService) SetBudgets(ctx context.Context, budgets []domain.CampaignBudget) error {
	log := s.logger.WithContext(ctx)

	if err := s.budgetRepo.Upsert(ctx, budgets); err != nil {
		log.WithError(err).Error("Failed to upsert budgets")
		return fmt.Errorf("failed to upsert budgets: %w", err)
	}

	log.WithField("count", len(budgets)).Info("Campaign budgets stored")
	return nil
}
