// Package rod implements a docconv.Source that renders documents in a
// headless Chrome before handing them to the pipeline, for sources whose
// content is built by JavaScript.
package rod

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docconv"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation and load of one page.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Source implements docconv.Source at compile time.
var _ docconv.Source = (*Source)(nil)

// Source retrieves rendered HTML through a Browser.
type Source struct {
	browser *Browser
	timeout time.Duration
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithTimeout sets the per-page timeout.
func WithTimeout(d time.Duration) SourceOption {
	return func(s *Source) {
		s.timeout = d
	}
}

// NewSource creates a Source rendering pages with browser.
func NewSource(browser *Browser, opts ...SourceOption) *Source {
	s := &Source{browser: browser, timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch navigates to rawURL, waits for the page to load, and returns the
// rendered markup. A non-empty token is sent as a bearer credential on
// requests to the source host only; subresources from other hosts go out
// without it.
func (s *Source) Fetch(ctx context.Context, rawURL, token string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, docconv.Errorf(docconv.EINVALID, "invalid source URL: %v", err)
	}

	browser, err := s.browser.acquire()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	page = page.Context(ctx)

	if token != "" {
		router := page.HijackRequests()
		if err := router.Add("*", "", authorize(target.Host, "Bearer "+token)); err != nil {
			return nil, err
		}
		go router.Run()
		defer func() { _ = router.Stop() }()
	}

	if err := page.Navigate(rawURL); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(html)), nil
}

// authorize returns a hijack handler that adds an Authorization header to
// requests for host and lets every other request through unchanged.
func authorize(host, credential string) func(*rod.Hijack) {
	return func(h *rod.Hijack) {
		if h.Request.URL().Host != host {
			h.ContinueRequest(&proto.FetchContinueRequest{})
			return
		}

		headers := []*proto.FetchHeaderEntry{{Name: "Authorization", Value: credential}}
		for name, value := range h.Request.Headers() {
			if strings.EqualFold(name, "Authorization") {
				continue
			}
			headers = append(headers, &proto.FetchHeaderEntry{Name: name, Value: value.Str()})
		}
		h.ContinueRequest(&proto.FetchContinueRequest{Headers: headers})
	}
}
