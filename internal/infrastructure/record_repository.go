package infrastructure

import (
	"context"
	"sync"
	"time"

	"adlens/internal/domain"
	"adlens/pkg/logger"
)

// RecordRepository keeps ingested metric records in memory, keyed by
// client. Reads hand out copies so report generation can run in
// parallel over a snapshot that nothing mutates.
type RecordRepository struct {
	data   map[string][]domain.DailyMetricRecord
	mutex  sync.RWMutex
	logger *logger.Logger
}

// NewRecordRepository creates a new in-memory record repository.
func NewRecordRepository(logger *logger.Logger) *RecordRepository {
	return &RecordRepository{
		data:   make(map[string][]domain.DailyMetricRecord),
		logger: logger,
	}
}

// Store appends records. Duplicate (client, campaign, ad set, ad, day)
// rows are kept as-is; the aggregator sums them, never overwrites.
func (r *RecordRepository) Store(ctx context.Context, records []domain.DailyMetricRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, rec := range records {
		r.data[rec.ClientID] = append(r.data[rec.ClientID], rec)
	}

	r.logger.WithContext(ctx).WithField("count", len(records)).Info("Stored metric records in memory")
	return nil
}

func (r *RecordRepository) GetByClient(ctx context.Context, clientID string) ([]domain.DailyMetricRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	stored := r.data[clientID]
	records := make([]domain.DailyMetricRecord, len(stored))
	copy(records, stored)
	return records, nil
}

func (r *RecordRepository) GetByClientAndRange(ctx context.Context, clientID string, from, to time.Time) ([]domain.DailyMetricRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var records []domain.DailyMetricRecord
	for _, rec := range r.data[clientID] {
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
