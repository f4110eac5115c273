package template

import (
	"context"
	"encoding/xml"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	"github.com/fwojciec/docconv"
	"github.com/google/uuid"
)

// run holds the state of one program execution.
type run struct {
	ctx      context.Context
	tmpl     *template.Template
	resolver docconv.OutputResolver
	markdown docconv.MarkdownConverter
	params   map[string]string

	// open is the href of the fan-out output being written, if any.
	open string
}

func (r *run) funcs() template.FuncMap {
	return template.FuncMap{
		"find":     find,
		"findAll":  findAll,
		"text":     text,
		"attr":     attr,
		"xml":      serialize,
		"inner":    inner,
		"inc":      func(i int) int { return i + 1 },
		"param":    r.param,
		"paramOr":  r.paramOr,
		"escape":   escape,
		"uuid":     uuid.NewString,
		"markdown": r.toMarkdown,
		"document": r.document,
	}
}

// document writes the named template, executed with data, to a new output
// resolved for href. One output is written completely before the next is
// requested, so nested calls fail.
func (r *run) document(href, name string, data any) (string, error) {
	if err := r.ctx.Err(); err != nil {
		return "", err
	}
	if r.open != "" {
		return "", docconv.Errorf(docconv.EINVALID, "output %q requested while %q is being written", href, r.open)
	}

	out, err := r.resolver.Resolve(href, "")
	if err != nil {
		return "", err
	}

	r.open = href
	defer func() { r.open = "" }()

	if err := r.tmpl.ExecuteTemplate(out, name, data); err != nil {
		return "", err
	}
	if err := r.resolver.Close(out); err != nil {
		return "", err
	}
	return "", nil
}

func (r *run) param(name string) (string, error) {
	v, ok := r.params[name]
	if !ok {
		return "", docconv.Errorf(docconv.EINVALID, "missing parameter %q", name)
	}
	return v, nil
}

// paramOr returns the parameter name, or fallback when it is not set.
func (r *run) paramOr(name, fallback string) string {
	if v, ok := r.params[name]; ok {
		return v
	}
	return fallback
}

// escape returns s with XML special characters replaced by entities.
func escape(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// toMarkdown converts an element, or a string of markup, to Markdown.
func (r *run) toMarkdown(v any) (string, error) {
	if r.markdown == nil {
		return "", docconv.Errorf(docconv.EINVALID, "markdown conversion is not configured")
	}

	var html string
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		html = v
	case *etree.Element:
		if v == nil {
			return "", nil
		}
		s, err := serialize(v)
		if err != nil {
			return "", err
		}
		html = s
	default:
		return "", docconv.Errorf(docconv.EINVALID, "markdown: unsupported argument %T", v)
	}
	return r.markdown.Convert(html)
}

func compilePath(p string) (etree.Path, error) {
	path, err := etree.CompilePath(p)
	if err != nil {
		return etree.Path{}, docconv.Errorf(docconv.EINVALID, "invalid path %q: %v", p, err)
	}
	return path, nil
}

// find returns the first element matching path below el, or nil.
func find(p string, el *etree.Element) (*etree.Element, error) {
	path, err := compilePath(p)
	if err != nil || el == nil {
		return nil, err
	}
	return el.FindElementPath(path), nil
}

// findAll returns every element matching path below el.
func findAll(p string, el *etree.Element) ([]*etree.Element, error) {
	path, err := compilePath(p)
	if err != nil || el == nil {
		return nil, err
	}
	return el.FindElementsPath(path), nil
}

// text returns the concatenated character data of el and its descendants.
func text(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	writeText(&b, el)
	return b.String()
}

func writeText(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch tok := tok.(type) {
		case *etree.CharData:
			b.WriteString(tok.Data)
		case *etree.Element:
			writeText(b, tok)
		}
	}
}

func attr(name string, el *etree.Element) string {
	if el == nil {
		return ""
	}
	return el.SelectAttrValue(name, "")
}

// serialize returns el, including its own tag, as XML.
func serialize(el *etree.Element) (string, error) {
	if el == nil {
		return "", nil
	}
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	return doc.WriteToString()
}

// inner returns the children of el as XML.
func inner(el *etree.Element) (string, error) {
	if el == nil {
		return "", nil
	}
	c := el.Copy()
	doc := etree.NewDocument()
	for _, tok := range append([]etree.Token(nil), c.Child...) {
		doc.AddChild(tok)
	}
	return doc.WriteToString()
}
