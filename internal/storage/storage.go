// Package storage is a thin client for the object-storage service holding
// uploaded files. The client only ever reads: it builds public URLs and
// downloads objects for the listing view's download action.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// Client reads objects from the storage service.
type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

// NewClient creates a storage client. baseURL and apiKey come from required
// configuration; there are no embedded fallbacks.
func NewClient(baseURL, apiKey, bucket string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		client:  &http.Client{Timeout: timeout},
	}
}

// PublicURL returns the generated public URL for an object path.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, url.PathEscape(c.bucket), url.PathEscape(path))
}

// Download fetches an object and returns its body. The caller must close it.
func (c *Client) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PublicURL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading object: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("downloading object: status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
