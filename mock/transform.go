package mock

import (
	"context"

	"github.com/fwojciec/docconv"
)

var _ docconv.Transformer = (*Transformer)(nil)

// Transformer is a mock implementation of docconv.Transformer.
type Transformer struct {
	TransformFn func(ctx context.Context, t *docconv.Transformation) error
}

func (tr *Transformer) Transform(ctx context.Context, t *docconv.Transformation) error {
	return tr.TransformFn(ctx, t)
}

var _ docconv.OutputResolver = (*OutputResolver)(nil)

// OutputResolver is a mock implementation of docconv.OutputResolver.
type OutputResolver struct {
	ResolveFn     func(href, base string) (*docconv.Output, error)
	CloseFn       func(out *docconv.Output) error
	NewInstanceFn func() docconv.OutputResolver
}

func (r *OutputResolver) Resolve(href, base string) (*docconv.Output, error) {
	return r.ResolveFn(href, base)
}

func (r *OutputResolver) Close(out *docconv.Output) error {
	return r.CloseFn(out)
}

func (r *OutputResolver) NewInstance() docconv.OutputResolver {
	return r.NewInstanceFn()
}

var _ docconv.MarkdownConverter = (*MarkdownConverter)(nil)

// MarkdownConverter is a mock implementation of docconv.MarkdownConverter.
type MarkdownConverter struct {
	ConvertFn func(html string) (string, error)
}

func (c *MarkdownConverter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
