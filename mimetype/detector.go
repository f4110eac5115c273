// Package mimetype detects media types from raw bytes using
// gabriel-vasile/mimetype.
package mimetype

import (
	"strings"

	"github.com/fwojciec/docconv"
	"github.com/gabriel-vasile/mimetype"
)

// Ensure Detector implements docconv.MediaTypeDetector at compile time.
var _ docconv.MediaTypeDetector = (*Detector)(nil)

// Detector inspects magic numbers to identify content.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the media type of data without parameters, e.g.
// "image/png". Unknown content is reported as application/octet-stream.
func (d *Detector) Detect(data []byte) string {
	mt, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return strings.TrimSpace(mt)
}
