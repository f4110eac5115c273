// Package goquery implements HTML normalization and DOM-based image
// extraction on top of goquery and golang.org/x/net/html.
package goquery

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docconv"
	"golang.org/x/net/html"
)

// XHTMLNamespace is set on the root element of normalized documents.
const XHTMLNamespace = "http://www.w3.org/1999/xhtml"

// Ensure Normalizer implements docconv.Normalizer at compile time.
var _ docconv.Normalizer = (*Normalizer)(nil)

// Normalizer turns tag soup into well-formed XHTML. The HTML5 parser fixes
// nesting and closes open elements; rendering quotes every attribute and
// self-closes void elements.
//
// html.Render writes the text of raw-text elements such as style and
// iframe verbatim, so that text is wrapped in CDATA sections. Scripts are
// removed. The document is parsed with scripting disabled, which turns the
// content of noscript into ordinary markup.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize parses r and returns the document as XHTML.
func (n *Normalizer) Normalize(r io.Reader) (string, error) {
	node, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return "", docconv.Errorf(docconv.EINVALID, "failed to parse HTML: %v", err)
	}
	doc := goquery.NewDocumentFromNode(node)

	doc.Find("script").Remove()
	doc.Find(rawTextSelector).Each(func(_ int, s *goquery.Selection) {
		for _, el := range s.Nodes {
			wrapRawText(el)
		}
	})

	root := doc.Find("html").First()
	if _, ok := root.Attr("xmlns"); !ok {
		root.SetAttr("xmlns", XHTMLNamespace)
	}

	var buf bytes.Buffer
	for _, node := range doc.Nodes {
		if err := html.Render(&buf, node); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

// rawTextSelector matches the elements whose text html.Render emits
// unescaped, apart from script.
const rawTextSelector = "style, iframe, noembed, noframes, noscript, plaintext, xmp"

// wrapRawText rewrites the text children of el as CDATA sections. Render
// writes them literally, so the markers reach the output intact.
func wrapRawText(el *html.Node) {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode || c.Data == "" {
			continue
		}
		c.Data = "<![CDATA[" + strings.ReplaceAll(c.Data, "]]>", "]]]]><![CDATA[>") + "]]>"
	}
}
