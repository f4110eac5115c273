package convert

import (
	"regexp"
	"slices"

	"github.com/fwojciec/docconv"
)

var (
	imgPattern = regexp.MustCompile(`(?is)<img\b(.*?)>`)
	srcPattern = regexp.MustCompile(`(?i)(?:^|\s)src\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// Ensure RegexpExtractor implements docconv.ImageExtractor at compile time.
var _ docconv.ImageExtractor = (*RegexpExtractor)(nil)

// RegexpExtractor finds image references by scanning the markup for img
// tag spans and reading the src attribute inside each span. It does not
// build a parse tree, so img markup inside comments or attribute values is
// picked up as well. That is acceptable for normalized documents, where
// such markup is escaped.
type RegexpExtractor struct{}

// NewRegexpExtractor creates a new RegexpExtractor.
func NewRegexpExtractor() *RegexpExtractor {
	return &RegexpExtractor{}
}

// ExtractImages returns the sorted, distinct src values found in content.
// Returns nil if there are none.
func (e *RegexpExtractor) ExtractImages(content string) []string {
	seen := make(map[string]struct{})
	for _, tag := range imgPattern.FindAllStringSubmatch(content, -1) {
		m := srcPattern.FindStringSubmatch(tag[1])
		if m == nil {
			continue
		}
		src := m[1]
		if src == "" {
			src = m[2]
		}
		if src == "" {
			continue
		}
		seen[src] = struct{}{}
	}

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
