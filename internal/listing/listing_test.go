package listing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimocks-netizen/docproc-client/internal/listing"
	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

func sampleJobs() []models.ProcessingJob {
	base := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	return []models.ProcessingJob{
		{JobID: "1", FileName: "contract.pdf", FullName: "John Doe", Status: "completed", ProcessingMethod: "standard", CreatedAt: base},
		{JobID: "2", FileName: "id_photo.jpg", FullName: "Jane Smith", Status: "completed", ProcessingMethod: "ai", CreatedAt: base.Add(24 * time.Hour)},
		{JobID: "3", FileName: "invoice.pdf", FullName: "Robert Johnson", Status: "processing", ProcessingMethod: "ai", CreatedAt: base.Add(48 * time.Hour)},
		{JobID: "4", FileName: "lease.pdf", FullName: "Jane Doe", Status: "failed", ProcessingMethod: "standard", CreatedAt: base.Add(72 * time.Hour)},
	}
}

func jobIDs(jobs []models.ProcessingJob) []string {
	ids := make([]string, len(jobs))
	for i, job := range jobs {
		ids[i] = job.JobID
	}
	return ids
}

func TestFilterByMethod(t *testing.T) {
	jobs := sampleJobs()

	assert.Equal(t, []string{"2", "3"}, jobIDs(listing.FilterByMethod(jobs, "ai")))
	assert.Equal(t, []string{"1", "4"}, jobIDs(listing.FilterByMethod(jobs, "standard")))
	assert.Len(t, listing.FilterByMethod(jobs, "all"), 4)
	assert.Len(t, listing.FilterByMethod(jobs, ""), 4)
}

func TestSearch_CaseInsensitiveOnFileAndFullName(t *testing.T) {
	jobs := sampleJobs()

	assert.Equal(t, []string{"2", "4"}, jobIDs(listing.Search(jobs, "JANE")))
	assert.Equal(t, []string{"1"}, jobIDs(listing.Search(jobs, "contract")))
	assert.Empty(t, jobIDs(listing.Search(jobs, "nonexistent")))
	assert.Len(t, listing.Search(jobs, ""), 4)
}

// Filtering by method then search must produce the same set as search then
// method, for any inputs.
func TestFilterAndSearchCommute(t *testing.T) {
	jobs := sampleJobs()

	methods := []string{"all", "standard", "ai"}
	terms := []string{"", "jane", "pdf", "doe", "zzz"}

	for _, method := range methods {
		for _, term := range terms {
			a := listing.Search(listing.FilterByMethod(jobs, method), term)
			b := listing.FilterByMethod(listing.Search(jobs, term), method)
			assert.Equal(t, jobIDs(a), jobIDs(b), "method=%s term=%s", method, term)
		}
	}
}

func TestSortByCreatedAt(t *testing.T) {
	jobs := sampleJobs()

	asc := listing.SortByCreatedAt(jobs, listing.SortAsc)
	desc := listing.SortByCreatedAt(jobs, listing.SortDesc)

	assert.Equal(t, []string{"1", "2", "3", "4"}, jobIDs(asc))
	assert.Equal(t, []string{"4", "3", "2", "1"}, jobIDs(desc))

	// Toggling the order reverses the displayed sequence exactly.
	for i := range asc {
		assert.Equal(t, asc[i].JobID, desc[len(desc)-1-i].JobID)
	}

	// Input order is untouched.
	assert.Equal(t, []string{"1", "2", "3", "4"}, jobIDs(jobs))
}

func TestPaginate(t *testing.T) {
	jobs := sampleJobs()

	page1, meta := listing.Paginate(jobs, 1, 3)
	require.Len(t, page1, 3)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 4, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
	assert.True(t, meta.HasNext)

	page2, meta := listing.Paginate(jobs, 2, 3)
	require.Len(t, page2, 1)
	assert.Equal(t, "4", page2[0].JobID)
	assert.False(t, meta.HasNext)
}

func TestPaginate_ClampsOutOfRangePages(t *testing.T) {
	jobs := sampleJobs()

	page, meta := listing.Paginate(jobs, 99, 3)
	assert.Equal(t, 2, meta.Page)
	assert.Len(t, page, 1)

	page, meta = listing.Paginate(jobs, 0, 3)
	assert.Equal(t, 1, meta.Page)
	assert.Len(t, page, 3)
}

func TestPaginate_EmptyCollection(t *testing.T) {
	page, meta := listing.Paginate(nil, 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, 0, meta.Total)
	assert.False(t, meta.HasNext)
}

func TestApply_OrderOfOperations(t *testing.T) {
	jobs := sampleJobs()

	page, meta := listing.Apply(jobs, listing.Query{
		Method:   "ai",
		Search:   "",
		Sort:     listing.SortDesc,
		Page:     1,
		PageSize: 10,
	})

	assert.Equal(t, []string{"3", "2"}, jobIDs(page))
	assert.Equal(t, 2, meta.Total)
}
