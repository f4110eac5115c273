// Package convert orchestrates document conversion. It fetches and
// normalizes the source, inlines images concurrently, and drives the
// transformation into a single output stream or a zip archive.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docconv"
	"github.com/fwojciec/docconv/zip"
)

// Defaults applied when the corresponding Converter field is zero.
const (
	DefaultConcurrency  = 8
	DefaultFetchTimeout = 10 * time.Second
	DefaultTimeout      = 2 * time.Minute
)

// Ensure Converter implements docconv.Converter at compile time.
var _ docconv.Converter = (*Converter)(nil)

// Converter converts remote HTML documents.
type Converter struct {
	Source       docconv.Source
	RenderSource docconv.Source // used when Config.Render is set
	Normalizer   docconv.Normalizer
	Extractors   map[string]docconv.ImageExtractor
	Images       docconv.ImageFetcher
	Detector     docconv.MediaTypeDetector
	Transformer  docconv.Transformer
	RateLimiter  docconv.DomainLimiter
	Logger       *slog.Logger

	// Concurrency caps the number of image fetches in flight.
	Concurrency int

	// FetchTimeout bounds each image fetch.
	FetchTimeout time.Duration

	// Timeout bounds the whole conversion.
	Timeout time.Duration
}

// Convert runs the pipeline for req and writes the output to w. Output is
// buffered until the transformation (and the archive, in archive mode) has
// completed, so nothing reaches w when the conversion fails.
func (c *Converter) Convert(ctx context.Context, req *docconv.Request, w io.Writer) error {
	if err := req.Validate(); err != nil {
		return err
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	content, err := c.load(ctx, req)
	if err != nil {
		return err
	}

	if req.Config.InlineImages {
		extractor, err := c.extractor(req.Config.Extractor)
		if err != nil {
			return err
		}
		content = c.Inline(ctx, req.Source, content, extractor)
	}

	var buf bytes.Buffer
	if err := c.transform(ctx, req, content, &buf); err != nil {
		return err
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Inline extracts the image references of content, fetches them, and
// returns content with every fetched reference replaced by a data URI.
// Relative references are resolved against baseURL for fetching.
func (c *Converter) Inline(ctx context.Context, baseURL, content string, extractor docconv.ImageExtractor) string {
	refs := extractor.ExtractImages(content)
	if len(refs) == 0 {
		return content
	}

	images := c.FetchImages(ctx, baseURL, refs)
	c.logger().Debug("images inlined",
		"source", baseURL,
		"found", len(refs),
		"inlined", len(images),
	)
	return InlineImages(content, images)
}

// load retrieves and normalizes the source document.
func (c *Converter) load(ctx context.Context, req *docconv.Request) (string, error) {
	source := c.Source
	if req.Config.Render {
		if c.RenderSource == nil {
			return "", docconv.Errorf(docconv.EINVALID, "mode %q requires browser rendering, which is not available", req.Config.Mode)
		}
		source = c.RenderSource
	}

	body, err := source.Fetch(ctx, req.Source, req.Token)
	if err != nil {
		return "", fmt.Errorf("fetching source: %w", err)
	}
	defer body.Close()

	content, err := c.Normalizer.Normalize(body)
	if err != nil {
		return "", fmt.Errorf("normalizing source: %w", err)
	}
	return content, nil
}

func (c *Converter) extractor(name string) (docconv.ImageExtractor, error) {
	if e, ok := c.Extractors[name]; ok {
		return e, nil
	}
	switch name {
	case "", docconv.ExtractorRegexp:
		return NewRegexpExtractor(), nil
	}
	return nil, docconv.Errorf(docconv.EINVALID, "extractor %q is not available", name)
}

// transform drives the transformation. In archive mode every fan-out output
// becomes an entry of one zip archive written to w and the primary output
// is discarded.
func (c *Converter) transform(ctx context.Context, req *docconv.Request, content string, w io.Writer) error {
	t := &docconv.Transformation{
		Definition: req.Config.Transformation,
		Content:    content,
		Params:     req.Params,
		Output:     w,
		Resolver:   docconv.DirectResolver{},
	}

	if !req.Config.Archive {
		return c.Transformer.Transform(ctx, t)
	}

	archive := zip.NewArchive(w)
	t.Output = io.Discard
	t.Resolver = zip.NewResolver(archive)

	if err := c.Transformer.Transform(ctx, t); err != nil {
		return err
	}
	if err := archive.Close(); err != nil {
		return err
	}

	entries := archive.Entries()
	for _, e := range entries {
		c.logger().Debug("archive entry",
			"id", e.ID,
			"name", e.Name,
			"bytes", e.Size,
			"checksum", fmt.Sprintf("%016x", e.Checksum),
		)
	}
	return nil
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
