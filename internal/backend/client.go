package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kimocks-netizen/docproc-client/pkg/models"
)

// Sentinel errors for backend client failures. Callers branch on these to
// pick the right user-facing rendering: connectivity banner, server-error
// message, or the distinct not-found banner.
var (
	ErrBackendUnreachable = errors.New("backend unreachable")
	ErrServerError        = errors.New("backend error response")
	ErrNotFound           = errors.New("job not found")
	ErrTimeout            = errors.New("backend request timeout")
)

// Client is the interface for talking to the document-processing backend.
type Client interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error)
	GetResult(ctx context.Context, jobID string) (*models.ProcessingResult, error)
	ListResults(ctx context.Context) ([]models.ProcessingJob, error)
	DeleteJob(ctx context.Context, jobID string) error
	Health(ctx context.Context) (*HealthStatus, error)
}

// UploadRequest carries the multipart fields for POST /api/upload.
type UploadRequest struct {
	FileName         string
	File             io.Reader
	FirstName        string
	LastName         string
	DOB              string
	ProcessingMethod string
}

// UploadResponse is the body returned by a successful upload.
type UploadResponse struct {
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status string `json:"status"`
}

// HTTPClient implements Client against the backend HTTP API. Every call is a
// single unretried request; retrying is the caller's concern (only the poll
// loop repeats, and it is not error-aware).
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a backend client for the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	body := &strings.Builder{}
	mw := multipart.NewWriter(body)

	fw, err := mw.CreateFormFile("file", req.FileName)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(fw, req.File); err != nil {
		return nil, fmt.Errorf("copying file into multipart body: %w", err)
	}
	fields := map[string]string{
		"firstName":        req.FirstName,
		"lastName":         req.LastName,
		"dob":              req.DOB,
		"processingMethod": req.ProcessingMethod,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("writing multipart field %s: %w", name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	u := fmt.Sprintf("%s/api/upload", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(body.String()))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError(resp, "upload failed")
	}

	var uploadResp UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}

	return &uploadResp, nil
}

func (c *HTTPClient) GetResult(ctx context.Context, jobID string) (*models.ProcessingResult, error) {
	u := fmt.Sprintf("%s/api/results/%s", c.baseURL, url.PathEscape(jobID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError(resp, "failed to fetch results")
	}

	var result models.ProcessingResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	result.Progress = models.SynthesizeProgress(result.Status)

	return &result, nil
}

func (c *HTTPClient) ListResults(ctx context.Context) ([]models.ProcessingJob, error) {
	u := fmt.Sprintf("%s/api/results", c.baseURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError(resp, "failed to fetch jobs")
	}

	var listResp struct {
		Jobs []models.ProcessingJob `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("decoding jobs response: %w", err)
	}
	if listResp.Jobs == nil {
		return []models.ProcessingJob{}, nil
	}

	return listResp.Jobs, nil
}

func (c *HTTPClient) DeleteJob(ctx context.Context, jobID string) error {
	u := fmt.Sprintf("%s/api/results/%s", c.baseURL, url.PathEscape(jobID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return responseError(resp, "failed to delete job")
	}

	return nil
}

func (c *HTTPClient) Health(ctx context.Context) (*HealthStatus, error) {
	u := fmt.Sprintf("%s/api/health", c.baseURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError(resp, "backend not healthy")
	}

	var health HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decoding health response: %w", err)
	}

	return &health, nil
}

// responseError wraps a non-2xx response as ErrServerError, carrying the
// response body text when it is readable and a generic message otherwise.
func responseError(resp *http.Response, fallback string) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))
	if err != nil || msg == "" {
		msg = fallback
	}
	return fmt.Errorf("%w: status %d: %s", ErrServerError, resp.StatusCode, msg)
}

// classifyError maps transport-level errors to sentinel errors. A deliberate
// cancellation is passed through untouched so callers can tell it apart from
// a timeout.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}

	return fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
