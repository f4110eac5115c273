//go:build integration

package rod_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/docconv/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrowser(t *testing.T, opts ...rod.BrowserOption) *rod.Browser {
	t.Helper()

	b, err := rod.NewBrowser(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSource_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns rendered HTML", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = io.WriteString(w, `<html><body><div id="app"></div>`+
				`<script>document.getElementById("app").innerHTML = "<p>rendered</p>";</script></body></html>`)
		}))
		t.Cleanup(srv.Close)

		source := rod.NewSource(newBrowser(t))
		body, err := source.Fetch(context.Background(), srv.URL, "")
		require.NoError(t, err)
		defer body.Close()

		got, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Contains(t, string(got), "<p>rendered</p>")
	})

	t.Run("sends the bearer token", func(t *testing.T) {
		t.Parallel()

		auth := make(chan string, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case auth <- r.Header.Get("Authorization"):
			default:
			}
			_, _ = io.WriteString(w, "<html><body>ok</body></html>")
		}))
		t.Cleanup(srv.Close)

		source := rod.NewSource(newBrowser(t))
		body, err := source.Fetch(context.Background(), srv.URL, "secret")
		require.NoError(t, err)
		_ = body.Close()

		assert.Equal(t, "Bearer secret", <-auth)
	})

	t.Run("keeps the bearer token off other hosts", func(t *testing.T) {
		t.Parallel()

		cdnAuth := make(chan string, 1)
		cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case cdnAuth <- r.Header.Get("Authorization"):
			default:
			}
			w.Header().Set("Content-Type", "image/gif")
			_, _ = w.Write([]byte("GIF89a"))
		}))
		t.Cleanup(cdn.Close)

		sourceAuth := make(chan string, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case sourceAuth <- r.Header.Get("Authorization"):
			default:
			}
			w.Header().Set("Content-Type", "text/html")
			_, _ = io.WriteString(w, `<html><body><img src="`+cdn.URL+`/pixel.gif"></body></html>`)
		}))
		t.Cleanup(srv.Close)

		source := rod.NewSource(newBrowser(t))
		body, err := source.Fetch(context.Background(), srv.URL, "secret")
		require.NoError(t, err)
		_ = body.Close()

		assert.Equal(t, "Bearer secret", <-sourceAuth)
		select {
		case got := <-cdnAuth:
			assert.Empty(t, got)
		case <-time.After(5 * time.Second):
			t.Fatal("image host was never requested")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		source := rod.NewSource(newBrowser(t))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := source.Fetch(ctx, "http://127.0.0.1:1", "")

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("page timeout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		t.Cleanup(srv.Close)

		source := rod.NewSource(newBrowser(t), rod.WithTimeout(200*time.Millisecond))
		_, err := source.Fetch(context.Background(), srv.URL, "")

		assert.Error(t, err)
	})
}

func TestBrowser(t *testing.T) {
	t.Parallel()

	t.Run("recycles after max pages", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "<html><body>ok</body></html>")
		}))
		t.Cleanup(srv.Close)

		b := newBrowser(t, rod.WithMaxPages(2))
		source := rod.NewSource(b)
		first := b.PID()

		for range 3 {
			body, err := source.Fetch(context.Background(), srv.URL, "")
			require.NoError(t, err)
			_ = body.Close()
		}

		assert.NotEqual(t, first, b.PID())
	})

	t.Run("close is idempotent and stops fetches", func(t *testing.T) {
		t.Parallel()

		b, err := rod.NewBrowser()
		require.NoError(t, err)
		require.NoError(t, b.Close())
		require.NoError(t, b.Close())

		_, err = rod.NewSource(b).Fetch(context.Background(), "http://127.0.0.1:1", "")
		assert.Error(t, err)
	})
}
