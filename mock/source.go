package mock

import (
	"context"
	"io"

	"github.com/fwojciec/docconv"
)

var _ docconv.Source = (*Source)(nil)

// Source is a mock implementation of docconv.Source.
type Source struct {
	FetchFn func(ctx context.Context, url, token string) (io.ReadCloser, error)
}

func (s *Source) Fetch(ctx context.Context, url, token string) (io.ReadCloser, error) {
	return s.FetchFn(ctx, url, token)
}

var _ docconv.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of docconv.Normalizer.
type Normalizer struct {
	NormalizeFn func(r io.Reader) (string, error)
}

func (n *Normalizer) Normalize(r io.Reader) (string, error) {
	return n.NormalizeFn(r)
}

var _ docconv.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docconv.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
