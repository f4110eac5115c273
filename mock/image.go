package mock

import (
	"context"

	"github.com/fwojciec/docconv"
)

var _ docconv.ImageExtractor = (*ImageExtractor)(nil)

// ImageExtractor is a mock implementation of docconv.ImageExtractor.
type ImageExtractor struct {
	ExtractImagesFn func(content string) []string
}

func (e *ImageExtractor) ExtractImages(content string) []string {
	return e.ExtractImagesFn(content)
}

var _ docconv.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of docconv.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) ([]byte, error) {
	return f.FetchImageFn(ctx, url)
}

var _ docconv.MediaTypeDetector = (*MediaTypeDetector)(nil)

// MediaTypeDetector is a mock implementation of docconv.MediaTypeDetector.
type MediaTypeDetector struct {
	DetectFn func(data []byte) string
}

func (d *MediaTypeDetector) Detect(data []byte) string {
	return d.DetectFn(data)
}
