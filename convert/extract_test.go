package convert_test

import (
	"testing"

	"github.com/fwojciec/docconv/convert"
	"github.com/stretchr/testify/assert"
)

func TestRegexpExtractor_ExtractImages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "no images",
			content: `<html><body><p>text</p></body></html>`,
			want:    nil,
		},
		{
			name:    "double and single quotes",
			content: `<img src="a.png"/><IMG alt='x' SRC='b.png'>`,
			want:    []string{"a.png", "b.png"},
		},
		{
			name:    "duplicates collapse",
			content: `<img src="a.png"/><p><img src="a.png"/></p>`,
			want:    []string{"a.png"},
		},
		{
			name:    "attributes spanning lines",
			content: "<img\n  alt=\"x\"\n  src=\"http://x/a.png\"\n/>",
			want:    []string{"http://x/a.png"},
		},
		{
			name:    "missing or empty src skipped",
			content: `<img alt="x"/><img src=""/><img src="c.png"/>`,
			want:    []string{"c.png"},
		},
		{
			name:    "data-src is not src",
			content: `<img data-src="lazy.png"/>`,
			want:    nil,
		},
		{
			name:    "escaped query string kept literally",
			content: `<img src="http://x/i?a=1&amp;b=2"/>`,
			want:    []string{"http://x/i?a=1&amp;b=2"},
		},
		{
			name:    "imgs prefix not matched",
			content: `<imgs src="no.png"></imgs>`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convert.NewRegexpExtractor().ExtractImages(tt.content)

			assert.Equal(t, tt.want, got)
		})
	}
}
