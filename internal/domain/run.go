package domain

import "time"

const (
	PipelineArchive    = "archive"
	PipelineEngagement = "engagement"
)

// RunStats holds statistics about one pipeline run.
type RunStats struct {
	Pipeline      string
	Input         int
	Skipped       int
	Invalid       int
	LookupsFailed int
	Written       int
	Absent        int
	Errors        int
	Published     int
	Duration      time.Duration
}

// RunState is the persisted progress of a pipeline across runs.
type RunState struct {
	ID           int64     `db:"id"`
	Pipeline     string    `db:"pipeline"`
	LastRunAt    time.Time `db:"last_run_at"`
	LastWritten  int64     `db:"last_written"`
	TotalWritten int64     `db:"total_written"`
}
