// Package http provides the HTTP side of docconv: a Fetcher that retrieves
// source documents and images, and a Handler that exposes conversions as
// an HTTP endpoint.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docconv"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxImageBytes caps the size of a single fetched image.
const DefaultMaxImageBytes = 20 << 20

// Ensure Fetcher implements docconv.Source and docconv.ImageFetcher at compile time.
var (
	_ docconv.Source       = (*Fetcher)(nil)
	_ docconv.ImageFetcher = (*Fetcher)(nil)
)

// Fetcher retrieves documents and images using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client        *http.Client
	timeout       time.Duration
	maxImageBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxImageBytes sets the largest image body FetchImage accepts.
func WithMaxImageBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxImageBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:       DefaultFetchTimeout,
		maxImageBytes: DefaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch opens the document at url, sending token as a bearer credential
// when set. The caller must close the returned body.
func (f *Fetcher) Fetch(ctx context.Context, url, token string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, docconv.Errorf(docconv.EINVALID, "invalid source URL: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	if err := checkStatus(resp, url); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}

// FetchImage retrieves the image at url. No credential is sent.
func (f *Fetcher) FetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", url, f.maxImageBytes)
	}

	return body, nil
}

func checkStatus(resp *http.Response, url string) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound, http.StatusGone:
		return docconv.Errorf(docconv.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
}
