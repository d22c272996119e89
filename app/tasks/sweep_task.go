package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rs1134/ai-disruption-tracker/app/database"
)

// SweepExpiredTask purges rows whose TTL has elapsed. Refresh runs also
// sweep, so this mostly matters when ingestion is failing and the feed
// would otherwise serve stale data forever.
type SweepExpiredTask struct {
	Task
	itemRepo    database.ItemRepository
	companyRepo database.CompanyRepository
}

func NewSweepExpiredTask(itemRepo database.ItemRepository, companyRepo database.CompanyRepository) *SweepExpiredTask {
	return &SweepExpiredTask{
		Task:        NewTask(TaskTypeSweepExpired),
		itemRepo:    itemRepo,
		companyRepo: companyRepo,
	}
}

func (t *SweepExpiredTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	items, err := t.itemRepo.DeleteExpired()
	if err != nil {
		return fmt.Errorf("failed to delete expired items: %w", err)
	}

	companies, err := t.companyRepo.DeleteExpired()
	if err != nil {
		return fmt.Errorf("failed to delete expired companies: %w", err)
	}

	slog.Info("Task completed",
		"type", "SweepExpired",
		"duration", t.GetDuration(),
		"items", items,
		"companies", companies)

	return nil
}
