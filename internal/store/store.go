// Package store persists integration runs and their result rows.
package store

import (
	"context"

	"github.com/geoborder/borderlens/internal/model"
)

// Store defines the persistence interface for the integration pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, pairCount int) (*model.Run, error)
	FinishRun(ctx context.Context, runID string, status model.RunStatus, rowCount int) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	LatestRun(ctx context.Context) (*model.Run, error)

	// Integrated rows
	InsertRows(ctx context.Context, runID string, rows []model.IntegratedRow) error
	RowsForRun(ctx context.Context, runID string) ([]model.IntegratedRow, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
