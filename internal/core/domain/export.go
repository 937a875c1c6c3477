package domain

import "time"

// JobState is the polled state of the asynchronous file-based hand-off to
// the external importer. This service never talks to the external package
// directly; an out-of-process importer drops a result file when done.
type JobState string

const (
	JobPending  JobState = "pending"
	JobImported JobState = "imported"
	JobFailed   JobState = "failed"
)

// JobStatus is the result of polling the staging area for a run.
type JobStatus struct {
	State       JobState       `json:"state"`
	ResultPath  string         `json:"resultPath,omitempty"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Detail      map[string]any `json:"detail,omitempty"` // parsed .result.json
}

// ExportResult is the outcome of a successful export run: the rendered
// file plus the identifiers the operator needs for the paper trail.
type ExportResult struct {
	RunID       string    `json:"runID"` // 8 hex chars
	BatchRef    string    `json:"batchRef"`
	Filename    string    `json:"filename"`
	File        []byte    `json:"-"`
	Journal     *Journal  `json:"journal"`
	RecordCount int       `json:"recordCount"`
	ExportedAt  time.Time `json:"exportedAt"`
}
