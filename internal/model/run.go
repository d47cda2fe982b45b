package model

import "time"

// RunStatus tracks the lifecycle of an integration run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run records one execution of the integration pipeline.
type Run struct {
	ID         string     `json:"id"`
	Status     RunStatus  `json:"status"`
	PairCount  int        `json:"pair_count"`
	RowCount   int        `json:"row_count"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
