// Package slog provides logging decorators for docconv services.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docconv"
)

// Ensure LoggingSource implements docconv.Source.
var _ docconv.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with logging.
type LoggingSource struct {
	next   docconv.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next docconv.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Fetch delegates to the wrapped source. The open is logged immediately;
// the byte count is logged when the body is closed.
func (s *LoggingSource) Fetch(ctx context.Context, url, token string) (io.ReadCloser, error) {
	begin := time.Now()
	body, err := s.next.Fetch(ctx, url, token)
	if err != nil {
		s.logger.Info("source fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	return &countingBody{ReadCloser: body, url: url, begin: begin, logger: s.logger}, nil
}

type countingBody struct {
	io.ReadCloser
	url    string
	begin  time.Time
	n      int64
	logger *slog.Logger
}

func (b *countingBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	b.n += int64(n)
	return n, err
}

func (b *countingBody) Close() error {
	err := b.ReadCloser.Close()
	b.logger.Info("source fetch",
		"url", b.url,
		"bytes", b.n,
		"duration", time.Since(b.begin),
		"err", err,
	)
	return err
}
