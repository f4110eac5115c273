package convert

import (
	"cmp"
	"slices"
	"strings"

	"github.com/fwojciec/docconv"
)

// InlineImages replaces every literal occurrence of each reference in
// images with the reference's data URI. The rewrite is textual: a
// reference string outside an img element is replaced too.
//
// All references are replaced in a single pass, longest first, so a
// reference that is a substring of another never corrupts it and inserted
// data URIs are never rewritten again.
func InlineImages(content string, images map[string]docconv.InlinedImage) string {
	if len(images) == 0 {
		return content
	}

	refs := make([]string, 0, len(images))
	for ref := range images {
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return content
	}
	slices.SortFunc(refs, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, 2*len(refs))
	for _, ref := range refs {
		pairs = append(pairs, ref, images[ref].URI())
	}
	return strings.NewReplacer(pairs...).Replace(content)
}
