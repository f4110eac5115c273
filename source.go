package docconv

import (
	"context"
	"io"
)

// Source retrieves the raw bytes of a document.
type Source interface {
	// Fetch opens the document at url. When token is non-empty it is sent
	// as a bearer credential. The caller must close the returned reader.
	Fetch(ctx context.Context, url, token string) (io.ReadCloser, error)
}

// Normalizer converts loosely-structured HTML into well-formed XHTML.
type Normalizer interface {
	Normalize(r io.Reader) (string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until a request to the domain is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
