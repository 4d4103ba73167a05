package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

// --- helpers ---

func newTestClient(t *testing.T, baseURL string) *HTTPClient {
	t.Helper()
	return NewHTTPClient(baseURL, 5*time.Second)
}

// --- Upload tests ---

func TestUpload_SendsMultipartFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		if got := r.FormValue("firstName"); got != "Al" {
			t.Errorf("unexpected firstName: %s", got)
		}
		if got := r.FormValue("lastName"); got != "Lee" {
			t.Errorf("unexpected lastName: %s", got)
		}
		if got := r.FormValue("dob"); got != "2008-06-15" {
			t.Errorf("unexpected dob: %s", got)
		}
		if got := r.FormValue("processingMethod"); got != "ai" {
			t.Errorf("unexpected processingMethod: %s", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "scan.pdf" {
			t.Errorf("unexpected file name: %s", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(UploadResponse{JobID: "job-123", Message: "accepted"})
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	resp, err := c.Upload(context.Background(), UploadRequest{
		FileName:         "scan.pdf",
		File:             strings.NewReader("%PDF-1.4 fake"),
		FirstName:        "Al",
		LastName:         "Lee",
		DOB:              "2008-06-15",
		ProcessingMethod: "ai",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.JobID != "job-123" {
		t.Errorf("unexpected job id: %s", resp.JobID)
	}
}

func TestUpload_ServerErrorCarriesBodyText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "file type not supported", http.StatusBadRequest)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Upload(context.Background(), UploadRequest{
		FileName: "scan.pdf",
		File:     strings.NewReader("data"),
	})
	if !errors.Is(err, ErrServerError) {
		t.Fatalf("expected ErrServerError, got %v", err)
	}
	if !strings.Contains(err.Error(), "file type not supported") {
		t.Errorf("error should carry the response body, got: %v", err)
	}
}

func TestUpload_NetworkFailureIsUnreachable(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	_, err := c.Upload(context.Background(), UploadRequest{
		FileName: "scan.pdf",
		File:     strings.NewReader("data"),
	})
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
}

func TestGetResult_CancelledContextIsNotATimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	c := newTestClient(t, ts.URL)
	_, err := c.GetResult(ctx, "job-1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("cancellation must not classify as ErrTimeout, got %v", err)
	}
}

// --- GetResult tests ---

func TestGetResult_SynthesizesProgress(t *testing.T) {
	tests := []struct {
		status       string
		wantProgress int
	}{
		{"processing", 70},
		{"completed", 100},
		{"failed", 10},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/results/job-1" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(models.ProcessingResult{
					JobID:  "job-1",
					Status: tt.status,
				})
			}))
			defer ts.Close()

			c := newTestClient(t, ts.URL)
			result, err := c.GetResult(context.Background(), "job-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Progress != tt.wantProgress {
				t.Errorf("expected progress %d, got %d", tt.wantProgress, result.Progress)
			}
		})
	}
}

func TestGetResult_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.GetResult(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetResult_DecodesAIData(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"jobId": "job-1",
			"status": "completed",
			"fullName": "Al Lee",
			"age": 17,
			"rawText": "some text",
			"processingMethod": "ai",
			"aiExtractedData": {
				"personalInfo": {"fullName": "Al Lee", "age": 17},
				"contactInfo": {"emails": ["al@example.com"]},
				"addresses": ["1 Main St"]
			}
		}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	result, err := c.GetResult(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AIExtractedData == nil {
		t.Fatal("expected AI data")
	}
	if result.AIExtractedData.PersonalInfo.FullName != "Al Lee" {
		t.Errorf("unexpected personal info name: %s", result.AIExtractedData.PersonalInfo.FullName)
	}
	if len(result.AIExtractedData.Addresses) != 1 {
		t.Errorf("expected 1 address, got %d", len(result.AIExtractedData.Addresses))
	}
}

// --- ListResults tests ---

func TestListResults_DecodesJobsEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/results" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs": [
			{"jobId": "a", "fileName": "one.pdf", "fullName": "Al Lee", "status": "completed", "processingMethod": "standard", "createdAt": "2026-08-01T10:00:00Z"},
			{"jobId": "b", "fileName": "two.jpg", "fullName": "Bo Kim", "status": "processing", "processingMethod": "ai", "createdAt": "2026-08-02T10:00:00Z"}
		]}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	jobs, err := c.ListResults(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].JobID != "a" || jobs[1].JobID != "b" {
		t.Errorf("unexpected job ids: %s, %s", jobs[0].JobID, jobs[1].JobID)
	}
}

func TestListResults_EmptyCollection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs": null}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	jobs, err := c.ListResults(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(jobs) != 0 {
		t.Errorf("expected 0 jobs, got %d", len(jobs))
	}
}

// --- DeleteJob tests ---

func TestDeleteJob_Success(t *testing.T) {
	var gotMethod, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	if err := c.DeleteJob(context.Background(), "job-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("unexpected method: %s", gotMethod)
	}
	if gotPath != "/api/results/job-9" {
		t.Errorf("unexpected path: %s", gotPath)
	}
}

func TestDeleteJob_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	err := c.DeleteJob(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// --- Health tests ---

func TestHealth_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("unexpected status: %s", health.Status)
	}
}

func TestHealth_Unhealthy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Health(context.Background())
	if !errors.Is(err, ErrServerError) {
		t.Fatalf("expected ErrServerError, got %v", err)
	}
}
