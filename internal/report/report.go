// Package report aggregates the job collection into the analytics summary
// shown on the report page and the CLI report command.
package report

import (
	"fmt"
	"time"

	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

// Summary is the aggregated view of all processed documents.
type Summary struct {
	TotalJobs          int
	AIJobs             int
	StandardJobs       int
	AIPercentage       float64
	StandardPercentage float64
	MostUsedMethod     string
	StatusCounts       map[string]int
	GeneratedAt        time.Time
}

// Build computes the summary over the full job collection.
func Build(jobs []models.ProcessingJob, now time.Time) Summary {
	s := Summary{
		TotalJobs:    len(jobs),
		StatusCounts: make(map[string]int),
		GeneratedAt:  now,
	}

	for _, job := range jobs {
		switch job.ProcessingMethod {
		case models.MethodAI:
			s.AIJobs++
		case models.MethodStandard:
			s.StandardJobs++
		}
		s.StatusCounts[job.Status]++
	}

	if s.TotalJobs > 0 {
		s.AIPercentage = float64(s.AIJobs) / float64(s.TotalJobs) * 100
		s.StandardPercentage = float64(s.StandardJobs) / float64(s.TotalJobs) * 100
	}

	switch {
	case s.AIJobs > s.StandardJobs:
		s.MostUsedMethod = "AI Extraction"
	case s.StandardJobs > s.AIJobs:
		s.MostUsedMethod = "Standard Extraction"
	default:
		s.MostUsedMethod = "Equal Usage"
	}

	return s
}

// FormatPercent renders a percentage with one decimal, matching the report
// page's display.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f", p)
}
