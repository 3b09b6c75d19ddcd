package infrastructure

import (
	"context"
	"sync"

	"adlens/internal/domain"
	"adlens/pkg/logger"
)

// BudgetRepository keeps stated campaign budgets in memory, keyed by
// (client, campaign).
type BudgetRepository struct {
	data   map[string]domain.CampaignBudget
	mutex  sync.RWMutex
	logger *logger.Logger
}

// NewBudgetRepository creates a new in-memory budget repository.
func NewBudgetRepository(logger *logger.Logger) *BudgetRepository {
	return &BudgetRepository{
		data:   make(map[string]domain.CampaignBudget),
		logger: logger,
	}
}

func budgetKey(b domain.CampaignBudget) string {
	return b.ClientID + "|" + b.CampaignID
}

// Upsert replaces the stored budget of each (client, campaign) pair.
func (r *BudgetRepository) Upsert(ctx context.Context, budgets []domain.CampaignBudget) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, b := range budgets {
		r.data[budgetKey(b)] = b
	}

	r.logger.WithContext(ctx).WithField("count", len(budgets)).Info("Stored campaign budgets in memory")
	return nil
}

func (r *BudgetRepository) GetActiveByClient(ctx context.Context, clientID string) ([]domain.CampaignBudget, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var budgets []domain.CampaignBudget
	for _, b := range r.data {
		if b.ClientID == clientID && b.Active {
			budgets = append(budgets, b)
		}
	}
	return budgets, nil
}
