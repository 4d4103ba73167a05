package models

import "time"

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	MethodStandard = "standard"
	MethodAI       = "ai"
)

// ProcessingJob is the list-item projection of a job as returned by
// GET /api/results. The backend creates it at upload time; the client never
// mutates it, only removes it from in-memory lists after a successful delete.
type ProcessingJob struct {
	JobID            string    `json:"jobId"`
	FileName         string    `json:"fileName"`
	FullName         string    `json:"fullName"`
	Status           string    `json:"status"`
	ProcessingMethod string    `json:"processingMethod"`
	CreatedAt        time.Time `json:"createdAt"`
}

// IsTerminal reports whether a job status will no longer change.
// Only "processing" is non-terminal; the poll loop stops on anything else.
func IsTerminal(status string) bool {
	return status != StatusProcessing
}

// SynthesizeProgress maps a job status to the display-only progress hint.
// This is a presentation convenience, not a server-reported metric: it
// carries no guarantee of linear or monotonic advancement.
func SynthesizeProgress(status string) int {
	switch status {
	case StatusProcessing:
		return 70
	case StatusCompleted:
		return 100
	default:
		return 10
	}
}
