// Package listing implements the client-side collection operations over the
// full job set returned by the backend: filter by method, free-text search,
// sort by creation time, and pagination. The backend is never asked to page
// or filter; everything here is pure and order-specified.
package listing

import (
	"sort"
	"strings"

	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

// DefaultPageSize is the fixed page size of the listing views.
const DefaultPageSize = 10

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// MethodAll matches every processing method.
const MethodAll = "all"

// Query bundles the listing parameters in the order they are applied:
// method filter, then search, then sort, then pagination.
type Query struct {
	Method   string
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// PageMeta describes the pagination of an applied query.
type PageMeta struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	HasNext    bool
}

// FilterByMethod keeps jobs whose processing method matches exactly.
// An empty method or MethodAll is the identity.
func FilterByMethod(jobs []models.ProcessingJob, method string) []models.ProcessingJob {
	if method == "" || method == MethodAll {
		return jobs
	}
	filtered := make([]models.ProcessingJob, 0, len(jobs))
	for _, job := range jobs {
		if job.ProcessingMethod == method {
			filtered = append(filtered, job)
		}
	}
	return filtered
}

// Search keeps jobs whose file name or full name contains term,
// case-insensitively. An empty term is the identity.
func Search(jobs []models.ProcessingJob, term string) []models.ProcessingJob {
	if term == "" {
		return jobs
	}
	needle := strings.ToLower(term)
	filtered := make([]models.ProcessingJob, 0, len(jobs))
	for _, job := range jobs {
		if strings.Contains(strings.ToLower(job.FileName), needle) ||
			strings.Contains(strings.ToLower(job.FullName), needle) {
			filtered = append(filtered, job)
		}
	}
	return filtered
}

// SortByCreatedAt returns the jobs ordered by creation time. order is
// SortAsc or SortDesc; anything else defaults to SortDesc (newest first).
// The sort is stable and the input slice is left untouched.
func SortByCreatedAt(jobs []models.ProcessingJob, order string) []models.ProcessingJob {
	sorted := make([]models.ProcessingJob, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortAsc {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// Paginate slices out one page. Pages are 1-based; out-of-range pages clamp
// to the nearest valid page rather than erroring.
func Paginate(jobs []models.ProcessingJob, page, pageSize int) ([]models.ProcessingJob, PageMeta) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(jobs)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	meta := PageMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
	return jobs[start:end], meta
}

// Apply runs the full pipeline in the specified order: method filter, search,
// sort, paginate.
func Apply(jobs []models.ProcessingJob, q Query) ([]models.ProcessingJob, PageMeta) {
	result := FilterByMethod(jobs, q.Method)
	result = Search(result, q.Search)
	result = SortByCreatedAt(result, q.Sort)
	return Paginate(result, q.Page, q.PageSize)
}
