package tasks

import (
	"context"
	"log/slog"

	"github.com/rs1134/ai-disruption-tracker/app/ingest"
)

type RefreshFundingTask struct {
	Task
	fundingAdapter *ingest.FundingAdapter
}

func NewRefreshFundingTask(fundingAdapter *ingest.FundingAdapter) *RefreshFundingTask {
	return &RefreshFundingTask{
		Task:           NewTask(TaskTypeRefreshFunding),
		fundingAdapter: fundingAdapter,
	}
}

func (t *RefreshFundingTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result := t.fundingAdapter.Run(ctx)

	slog.Info("Task completed",
		"type", "RefreshFunding",
		"duration", t.GetDuration(),
		"fetched", result.Fetched,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"errors", len(result.Errors))

	return nil
}
