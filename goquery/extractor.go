package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docconv"
	"golang.org/x/net/html"
)

// Ensure ImageExtractor implements docconv.ImageExtractor at compile time.
var _ docconv.ImageExtractor = (*ImageExtractor)(nil)

// ImageExtractor finds image references by parsing the document and
// reading the src attribute of every img element. Unlike the regexp scan
// it ignores img markup inside comments and attribute values.
type ImageExtractor struct{}

// NewImageExtractor creates a new ImageExtractor.
func NewImageExtractor() *ImageExtractor {
	return &ImageExtractor{}
}

// ExtractImages returns the sorted, distinct src values of img elements,
// escaped the way html.Render writes them so they match the markup text.
// Returns nil if the content cannot be parsed or has no images.
func (e *ImageExtractor) ExtractImages(content string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if src == "" {
			return
		}
		seen[html.EscapeString(src)] = struct{}{}
	})

	if len(seen) == 0 {
		return nil
	}

	refs := make([]string, 0, len(seen))
	for src := range seen {
		refs = append(refs, src)
	}
	slices.Sort(refs)
	return refs
}
