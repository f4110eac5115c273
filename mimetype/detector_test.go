package mimetype_test

import (
	"testing"

	"github.com/fwojciec/docconv"
	"github.com/fwojciec/docconv/mimetype"
	"github.com/stretchr/testify/assert"
)

// Ensure Detector implements docconv.MediaTypeDetector at compile time.
var _ docconv.MediaTypeDetector = (*mimetype.Detector)(nil)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), "image/png"},
		{"jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), "image/jpeg"},
		{"gif", []byte("GIF89a\x01\x00\x01\x00"), "image/gif"},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), "image/svg+xml"},
		{"unknown binary", []byte{0x00, 0x01, 0x02, 0x03}, "application/octet-stream"},
	}

	d := mimetype.NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, d.Detect(tt.data))
		})
	}

	t.Run("strips parameters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "text/plain", d.Detect([]byte("plain text")))
	})
}
