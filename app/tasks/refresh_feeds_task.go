package tasks

import (
	"context"
	"log/slog"

	"github.com/rs1134/ai-disruption-tracker/app/ingest"
)

type RefreshFeedsTask struct {
	Task
	refresher *ingest.Refresher
}

func NewRefreshFeedsTask(refresher *ingest.Refresher) *RefreshFeedsTask {
	return &RefreshFeedsTask{
		Task:      NewTask(TaskTypeRefreshFeeds),
		refresher: refresher,
	}
}

func (t *RefreshFeedsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	results := t.refresher.Run(ctx)

	slog.Info("Task completed",
		"type", "RefreshFeeds",
		"duration", t.GetDuration(),
		"social", results.Social,
		"news", results.News,
		"errors", len(results.Errors))

	return nil
}
