package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docconv"
)

// Ensure LoggingTransformer implements docconv.Transformer.
var _ docconv.Transformer = (*LoggingTransformer)(nil)

// LoggingTransformer wraps a Transformer with logging.
type LoggingTransformer struct {
	next   docconv.Transformer
	logger *slog.Logger
}

// NewLoggingTransformer creates a new LoggingTransformer.
func NewLoggingTransformer(next docconv.Transformer, logger *slog.Logger) *LoggingTransformer {
	return &LoggingTransformer{next: next, logger: logger}
}

// Transform delegates to the wrapped transformer and logs the operation.
func (tr *LoggingTransformer) Transform(ctx context.Context, t *docconv.Transformation) (err error) {
	defer func(begin time.Time) {
		tr.logger.Info("transform",
			"definition", t.Definition,
			"bytes", len(t.Content),
			"params", len(t.Params),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return tr.next.Transform(ctx, t)
}
