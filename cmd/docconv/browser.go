package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fwojciec/docconv"
	"github.com/fwojciec/docconv/rod"
)

var _ docconv.Source = (*lazyBrowser)(nil)

// lazyBrowser launches Chrome on the first rendered fetch, so conversions
// that never render do not need a browser installed.
type lazyBrowser struct {
	timeout time.Duration

	mu      sync.Mutex
	browser *rod.Browser
	source  *rod.Source
}

func (b *lazyBrowser) Fetch(ctx context.Context, url, token string) (io.ReadCloser, error) {
	source, err := b.get()
	if err != nil {
		return nil, err
	}
	return source.Fetch(ctx, url, token)
}

func (b *lazyBrowser) get() (*rod.Source, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.source != nil {
		return b.source, nil
	}

	browser, err := rod.NewBrowser()
	if err != nil {
		return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
	}

	var opts []rod.SourceOption
	if b.timeout > 0 {
		opts = append(opts, rod.WithTimeout(b.timeout))
	}
	b.browser = browser
	b.source = rod.NewSource(browser, opts...)
	return b.source, nil
}

// Close shuts the browser down if it was launched.
func (b *lazyBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	b.browser, b.source = nil, nil
	return err
}
