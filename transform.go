package docconv

import (
	"context"
	"io"
)

// Transformation describes one run of a transformation program over a
// document.
type Transformation struct {
	// Definition identifies the transformation program, e.g. a template
	// file name relative to the configuration directory.
	Definition string

	// Content is the normalized (and possibly image-inlined) document.
	Content string

	// Params are passed to the program unchanged.
	Params map[string]string

	// Output receives the primary output.
	Output io.Writer

	// Resolver turns fan-out requests into sinks.
	Resolver OutputResolver
}

// Transformer applies a transformation program to a document.
// Any error means the outputs written so far are incomplete.
type Transformer interface {
	Transform(ctx context.Context, t *Transformation) error
}

// Output is a sink for one fan-out output of a transformation.
type Output struct {
	// ID is a synthetic identifier used for tracking and diagnostics.
	// It is not derived from the output's content or name.
	ID string

	// Href is the name the transformation requested.
	Href string

	io.Writer
}

// OutputResolver resolves the additional named outputs a transformation
// requests while it runs.
type OutputResolver interface {
	// Resolve returns a sink for the output named href, relative to base.
	Resolve(href, base string) (*Output, error)

	// Close signals that the transformation finished writing out.
	Close(out *Output) error

	// NewInstance returns a resolver for a nested transformation context.
	// Instances created from the same resolver share its underlying sink.
	NewInstance() OutputResolver
}

// Ensure DirectResolver implements OutputResolver at compile time.
var _ OutputResolver = DirectResolver{}

// DirectResolver is used when a conversion writes a single output stream.
// Every fan-out request fails with EINVALID, so a direct conversion never
// produces more than its primary output.
type DirectResolver struct{}

// Resolve always returns an EINVALID error.
func (DirectResolver) Resolve(href, base string) (*Output, error) {
	return nil, Errorf(EINVALID, "output %q requires archive mode", href)
}

// Close is a no-op.
func (DirectResolver) Close(out *Output) error { return nil }

// NewInstance returns another DirectResolver.
func (DirectResolver) NewInstance() OutputResolver { return DirectResolver{} }
