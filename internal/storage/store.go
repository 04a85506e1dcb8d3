package storage

import (
	"context"

	"synaptogen/internal/model"
)

// Store persists run configurations, run summaries, and the exported
// connectivity records per run.
type Store interface {
	Init(ctx context.Context) error
	SaveRunConfig(ctx context.Context, cfg model.RunConfig) error
	GetRunConfig(ctx context.Context, runID string) (model.RunConfig, bool, error)
	SaveRunSummary(ctx context.Context, summary model.RunSummary) error
	GetRunSummary(ctx context.Context, runID string) (model.RunSummary, bool, error)
	ListRunIDs(ctx context.Context) ([]string, error)
	SaveConnectivity(ctx context.Context, runID string, records []model.ConnectivityRecord) error
	GetConnectivity(ctx context.Context, runID string) ([]model.ConnectivityRecord, bool, error)
}
