package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kimocks-netizen/docproc-client/internal/backend"
	"github.com/kimocks-netizen/docproc-client/internal/listing"
	"github.com/kimocks-netizen/docproc-client/internal/report"
	"github.com/kimocks-netizen/docproc-client/internal/state"
	"github.com/kimocks-netizen/docproc-client/internal/storage"
	"github.com/kimocks-netizen/docproc-client/internal/validate"
	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

const themeCookie = "darkMode"

// connectivityMessage is the generic banner for transport failures, where no
// response body exists to surface.
const connectivityMessage = "Failed to connect to server. Please check if the backend is running."

// Handlers renders every page of the web surface. All state flows through
// the injected store; handlers hold no mutable fields of their own.
type Handlers struct {
	client       backend.Client
	store        *state.Store
	storage      *storage.Client // nil when downloads are disabled
	templates    templates
	pollInterval time.Duration
}

// NewHandlers wires the page handlers. storageClient may be nil.
func NewHandlers(client backend.Client, store *state.Store, storageClient *storage.Client, pollInterval time.Duration) *Handlers {
	return &Handlers{
		client:       client,
		store:        store,
		storage:      storageClient,
		templates:    parseTemplates(),
		pollInterval: pollInterval,
	}
}

// page holds the fields every template expects from the layout.
type page struct {
	Title    string
	DarkMode bool
	Refresh  int
}

func (h *Handlers) newPage(r *http.Request, title string) page {
	dark := false
	if c, err := r.Cookie(themeCookie); err == nil {
		dark = c.Value == "true"
	}
	return page{Title: title, DarkMode: dark}
}

// --- upload ---

type uploadPage struct {
	page
	Form        validate.UploadForm
	FieldErrors validate.FieldErrors
	Error       string
}

func (h *Handlers) UploadForm(w http.ResponseWriter, r *http.Request) {
	upload := h.store.State().Upload
	h.templates.render(w, "upload", uploadPage{
		page: h.newPage(r, "Upload"),
		Form: validate.UploadForm{
			FirstName:        upload.FirstName,
			LastName:         upload.LastName,
			DOB:              upload.DOB,
			ProcessingMethod: upload.ProcessingMethod,
		},
		FieldErrors: validate.FieldErrors{},
	})
}

func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	// Cap the request body so an oversized upload is refused instead of
	// being spooled to disk before validation sees it. The margin covers
	// the other form fields and multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, validate.MaxFileSize+1<<20)

	if err := r.ParseMultipartForm(validate.MaxFileSize + 1<<20); err != nil {
		status := http.StatusBadRequest
		msg := "could not be read"
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusUnprocessableEntity
			msg = "must be 10MB or smaller"
		}
		h.templates.renderStatus(w, status, "upload", uploadPage{
			page:        h.newPage(r, "Upload"),
			FieldErrors: validate.FieldErrors{"file": msg},
		})
		return
	}

	form := validate.UploadForm{
		FirstName:        r.FormValue("firstName"),
		LastName:         r.FormValue("lastName"),
		DOB:              r.FormValue("dob"),
		ProcessingMethod: r.FormValue("processingMethod"),
	}
	if form.ProcessingMethod == "" {
		form.ProcessingMethod = models.MethodStandard
	}

	var file io.ReadCloser
	if f, header, err := r.FormFile("file"); err == nil {
		form.FileName = header.Filename
		form.FileSize = header.Size
		file = f
		defer file.Close()
	}

	h.store.Dispatch(state.SetUploadForm{
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		DOB:              form.DOB,
		ProcessingMethod: form.ProcessingMethod,
		FileName:         form.FileName,
	})

	// Validation failures never reach the backend.
	if fieldErrors := validate.Check(form, time.Now()); len(fieldErrors) > 0 {
		h.templates.renderStatus(w, http.StatusUnprocessableEntity, "upload", uploadPage{
			page:        h.newPage(r, "Upload"),
			Form:        form,
			FieldErrors: fieldErrors,
		})
		return
	}

	h.store.Dispatch(state.SetUploading{Uploading: true})
	resp, err := h.client.Upload(r.Context(), backend.UploadRequest{
		FileName:         form.FileName,
		File:             file,
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		DOB:              form.DOB,
		ProcessingMethod: form.ProcessingMethod,
	})
	h.store.Dispatch(state.SetUploading{Uploading: false})
	if err != nil {
		msg := uploadErrorMessage(err)
		h.store.Dispatch(state.SetUploadError{Message: msg})
		h.templates.renderStatus(w, http.StatusBadGateway, "upload", uploadPage{
			page:        h.newPage(r, "Upload"),
			Form:        form,
			FieldErrors: validate.FieldErrors{},
			Error:       msg,
		})
		return
	}

	h.store.Dispatch(state.ResetUpload{})
	h.store.Dispatch(state.SetJob{JobID: resp.JobID})
	http.Redirect(w, r, "/results/"+url.PathEscape(resp.JobID), http.StatusSeeOther)
}

func uploadErrorMessage(err error) string {
	if errors.Is(err, backend.ErrBackendUnreachable) || errors.Is(err, backend.ErrTimeout) {
		return "Upload failed. Please try again."
	}
	return err.Error()
}

// --- result ---

type resultPage struct {
	page
	Result   *models.ProcessingResult
	AI       *models.AIExtractedData
	ShowAI   bool
	NotFound bool
	Error    string
}

func (h *Handlers) Result(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	p := h.newPage(r, "Results")

	result, err := h.client.GetResult(r.Context(), jobID)
	switch {
	case errors.Is(err, backend.ErrNotFound):
		h.templates.renderStatus(w, http.StatusNotFound, "result", resultPage{page: p, NotFound: true})
		return
	case err != nil:
		h.store.Dispatch(state.SetResultsError{Message: connectivityMessage})
		h.templates.renderStatus(w, http.StatusBadGateway, "result", resultPage{
			page:  p,
			Error: "Error loading results. Please try again.",
		})
		return
	}

	h.store.Dispatch(state.SetResult{Result: result})
	h.store.Dispatch(state.SetJobStatus{Status: result.Status})

	// While the job is processing, the page refreshes itself on the poll
	// interval; a terminal status renders a static page.
	if result.Status == models.StatusProcessing {
		p.Refresh = int(h.pollInterval.Seconds())
	}

	h.templates.render(w, "result", resultPage{
		page:   p,
		Result: result,
		AI:     result.AIExtractedData,
		ShowAI: result.ProcessingMethod == models.MethodAI && !result.AIExtractedData.IsEmpty(),
	})
}

// --- documents listing ---

type documentsPage struct {
	page
	Jobs          []models.ProcessingJob
	Query         listing.Query
	Meta          listing.PageMeta
	Error         string
	Alert         string
	Downloads     bool
	ToggleSortURL string
	PrevPageURL   string
	NextPageURL   string
}

func (h *Handlers) Documents(w http.ResponseWriter, r *http.Request) {
	p := h.newPage(r, "Documents")
	q := parseListingQuery(r)

	jobs, err := h.client.ListResults(r.Context())
	if err != nil {
		h.templates.renderStatus(w, http.StatusBadGateway, "documents", documentsPage{
			page:  p,
			Query: q,
			Error: connectivityMessage,
		})
		return
	}
	h.store.Dispatch(state.SetJobs{Jobs: jobs})

	pageJobs, meta := listing.Apply(jobs, q)

	h.templates.render(w, "documents", documentsPage{
		page:          p,
		Jobs:          pageJobs,
		Query:         q,
		Meta:          meta,
		Alert:         r.URL.Query().Get("alert"),
		Downloads:     h.storage != nil,
		ToggleSortURL: listingURL(q, toggledSort(q.Sort), meta.Page),
		PrevPageURL:   listingURL(q, q.Sort, meta.Page-1),
		NextPageURL:   listingURL(q, q.Sort, meta.Page+1),
	})
}

func parseListingQuery(r *http.Request) listing.Query {
	values := r.URL.Query()
	q := listing.Query{
		Method:   values.Get("method"),
		Search:   values.Get("q"),
		Sort:     values.Get("sort"),
		PageSize: listing.DefaultPageSize,
	}
	if q.Method == "" {
		q.Method = listing.MethodAll
	}
	if q.Sort != listing.SortAsc {
		q.Sort = listing.SortDesc
	}
	if _, err := fmt.Sscanf(values.Get("page"), "%d", &q.Page); err != nil {
		q.Page = 1
	}
	return q
}

func toggledSort(sort string) string {
	if sort == listing.SortAsc {
		return listing.SortDesc
	}
	return listing.SortAsc
}

func listingURL(q listing.Query, sort string, page int) string {
	values := url.Values{}
	if q.Method != listing.MethodAll {
		values.Set("method", q.Method)
	}
	if q.Search != "" {
		values.Set("q", q.Search)
	}
	values.Set("sort", sort)
	if page > 1 {
		values.Set("page", fmt.Sprintf("%d", page))
	}
	return "/documents?" + values.Encode()
}

// --- delete ---

type confirmDeletePage struct {
	page
	JobID    string
	FileName string
}

func (h *Handlers) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	fileName := jobID
	for _, job := range h.store.State().Results.Jobs {
		if job.JobID == jobID {
			fileName = job.FileName
			break
		}
	}

	h.templates.render(w, "confirm_delete", confirmDeletePage{
		page:     h.newPage(r, "Delete Document"),
		JobID:    jobID,
		FileName: fileName,
	})
}

func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	if err := h.client.DeleteJob(r.Context(), jobID); err != nil {
		// The list stays unchanged; the listing page shows the alert.
		msg := "Failed to delete the document. Please try again."
		http.Redirect(w, r, "/documents?alert="+url.QueryEscape(msg), http.StatusSeeOther)
		return
	}

	h.store.Dispatch(state.RemoveJob{JobID: jobID})
	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

// --- compare ---

type comparePage struct {
	page
	Result        *models.ProcessingResult
	AIJSON        string
	NotApplicable bool
	Error         string
}

func (h *Handlers) Compare(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	p := h.newPage(r, "Compare")

	result, err := h.client.GetResult(r.Context(), jobID)
	switch {
	case errors.Is(err, backend.ErrNotFound):
		h.templates.renderStatus(w, http.StatusNotFound, "compare", comparePage{
			page:  p,
			Error: "The requested results could not be found.",
		})
		return
	case err != nil:
		h.templates.renderStatus(w, http.StatusBadGateway, "compare", comparePage{
			page:  p,
			Error: connectivityMessage,
		})
		return
	}

	cp := comparePage{page: p, Result: result}
	if result.ProcessingMethod != models.MethodAI {
		cp.NotApplicable = true
	} else if !result.AIExtractedData.IsEmpty() {
		pretty, err := json.MarshalIndent(result.AIExtractedData, "", "  ")
		if err == nil {
			cp.AIJSON = string(pretty)
		}
	}

	h.templates.render(w, "compare", cp)
}

// --- report ---

type reportPage struct {
	page
	Summary report.Summary
	Error   string
}

func (h *Handlers) Report(w http.ResponseWriter, r *http.Request) {
	p := h.newPage(r, "Report")

	jobs, err := h.client.ListResults(r.Context())
	if err != nil {
		h.templates.renderStatus(w, http.StatusBadGateway, "report", reportPage{
			page:    p,
			Summary: report.Build(nil, time.Now()),
			Error:   connectivityMessage,
		})
		return
	}

	h.templates.render(w, "report", reportPage{
		page:    p,
		Summary: report.Build(jobs, time.Now()),
	})
}

// --- health ---

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"backend": "ok"}
	if _, err := h.client.Health(r.Context()); err != nil {
		checks["backend"] = "degraded"
	}

	status := http.StatusOK
	if checks["backend"] != "ok" {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"status":   map[bool]string{true: "ok", false: "degraded"}[status == http.StatusOK],
		"services": checks,
	})
}

// --- fallback ---

type errorPage struct {
	page
	Heading string
	Message string
}

func (h *Handlers) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	h.templates.renderStatus(w, http.StatusNotFound, "error", errorPage{
		page:    h.newPage(r, "Not Found"),
		Heading: "Page Not Found",
		Message: "The page you are looking for does not exist.",
	})
}

// --- theme ---

func (h *Handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	dark := false
	if c, err := r.Cookie(themeCookie); err == nil {
		dark = c.Value == "true"
	}
	dark = !dark

	h.store.Dispatch(state.SetDarkMode{DarkMode: dark})
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    fmt.Sprintf("%t", dark),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
	})

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// --- download ---

func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		http.NotFound(w, r)
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	body, err := h.storage.Download(ctx, path)
	if errors.Is(err, storage.ErrObjectNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "download failed", http.StatusBadGateway)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path))
	io.Copy(w, body)
}
