package mock

import (
	"context"
	"io"

	"github.com/fwojciec/docconv"
)

var _ docconv.ConfigService = (*ConfigService)(nil)

// ConfigService is a mock implementation of docconv.ConfigService.
type ConfigService struct {
	FindConfigFn func(mode string) (*docconv.Config, error)
}

func (s *ConfigService) FindConfig(mode string) (*docconv.Config, error) {
	return s.FindConfigFn(mode)
}

var _ docconv.Converter = (*Converter)(nil)

// Converter is a mock implementation of docconv.Converter.
type Converter struct {
	ConvertFn func(ctx context.Context, req *docconv.Request, w io.Writer) error
}

func (c *Converter) Convert(ctx context.Context, req *docconv.Request, w io.Writer) error {
	return c.ConvertFn(ctx, req, w)
}
