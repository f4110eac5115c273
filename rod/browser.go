package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages a browser renders
// before it is replaced.
const DefaultMaxPages = 75

// Browser owns a headless Chrome process and replaces it after a number of
// rendered pages. Chrome's memory baseline grows under load and does not
// come back down even when pages are closed.
//
// Browser is safe for concurrent use.
type Browser struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
	closed   bool
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithMaxPages sets how many pages are rendered before the browser is
// replaced. Defaults to DefaultMaxPages.
func WithMaxPages(n int) BrowserOption {
	return func(b *Browser) {
		b.maxPages = n
	}
}

// NewBrowser launches a headless Chrome. Close must be called when the
// Browser is no longer needed.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(b)
	}

	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	b.browser, b.launcher = browser, l
	return b, nil
}

// acquire returns the browser to render the next page with and counts the
// page against the recycling threshold.
func (b *Browser) acquire() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("browser closed")
	}

	if b.pages >= b.maxPages {
		b.recycle()
	}
	b.pages++
	return b.browser, nil
}

// recycle swaps in a fresh browser. The current one is kept if the launch
// fails. Must be called with mu held.
func (b *Browser) recycle() {
	browser, l, err := launch()
	if err != nil {
		return
	}

	_ = b.browser.Close()
	b.launcher.Kill()
	b.browser, b.launcher = browser, l
	b.pages = 0
}

// Close shuts the browser down. It is safe to call more than once.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	err := b.browser.Close()
	b.launcher.Kill()
	return err
}

// PID returns the process ID of the browser launcher.
func (b *Browser) PID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.launcher.PID()
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}
