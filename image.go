package docconv

import (
	"context"
	"encoding/base64"
)

// ImageExtractor finds the image references of a document.
type ImageExtractor interface {
	// ExtractImages returns the distinct src locators of the image elements
	// in content. Elements without a parseable src are skipped.
	ExtractImages(content string) []string
}

// ImageFetcher retrieves the raw bytes of a single image.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// MediaTypeDetector guesses the media type of raw bytes from their content.
type MediaTypeDetector interface {
	Detect(data []byte) string
}

// InlinedImage is the embeddable form of a fetched image.
type InlinedImage struct {
	MediaType string
	Data      string // base64, standard encoding
}

// NewInlinedImage encodes data as an InlinedImage of the given media type.
func NewInlinedImage(mediaType string, data []byte) InlinedImage {
	return InlinedImage{
		MediaType: mediaType,
		Data:      base64.StdEncoding.EncodeToString(data),
	}
}

// URI returns the data URI that replaces the original image reference.
func (img InlinedImage) URI() string {
	return "data:" + img.MediaType + ";base64," + img.Data
}
