// Package template implements docconv.Transformer with text/template
// programs evaluated over an etree model of the document.
//
// A transformation program is a template file. It executes with an Input
// value and may call the document function to write additional named
// outputs through the conversion's OutputResolver:
//
//	{{range $i, $s := findAll "//section" .Doc}}
//	  {{document (printf "chapter%d.xhtml" (inc $i)) "chapter" $s}}
//	{{end}}
//	{{define "chapter"}}<html>{{xml .}}</html>{{end}}
package template

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"text/template"

	"github.com/beevik/etree"
	"github.com/fwojciec/docconv"
)

// Ensure Transformer implements docconv.Transformer at compile time.
var _ docconv.Transformer = (*Transformer)(nil)

// Input is the data a transformation program executes with.
type Input struct {
	// Doc is the document node. Paths such as "//body" select from it.
	Doc *etree.Element

	// Params are the transformation parameters of the request.
	Params map[string]string
}

// Transformer loads transformation programs from a file system.
type Transformer struct {
	fsys     fs.FS
	markdown docconv.MarkdownConverter
}

// NewTransformer creates a Transformer that reads program files from fsys
// and converts HTML with markdown in the markdown template function.
func NewTransformer(fsys fs.FS, markdown docconv.MarkdownConverter) *Transformer {
	return &Transformer{fsys: fsys, markdown: markdown}
}

// Transform parses the document, runs the program named by t.Definition
// and writes its primary output to t.Output.
func (tr *Transformer) Transform(ctx context.Context, t *docconv.Transformation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := fs.ReadFile(tr.fsys, t.Definition)
	if errors.Is(err, fs.ErrNotExist) {
		return docconv.Errorf(docconv.ENOTFOUND, "transformation %q not found", t.Definition)
	} else if err != nil {
		return fmt.Errorf("reading transformation %q: %w", t.Definition, err)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.ReadSettings.Entity = xml.HTMLEntity
	if err := doc.ReadFromString(t.Content); err != nil {
		return docconv.Errorf(docconv.EINVALID, "document is not well-formed: %v", err)
	}

	resolver := t.Resolver
	if resolver == nil {
		resolver = docconv.DirectResolver{}
	}

	r := &run{
		ctx:      ctx,
		resolver: resolver.NewInstance(),
		markdown: tr.markdown,
		params:   t.Params,
	}

	tmpl, err := template.New(path.Base(t.Definition)).
		Option("missingkey=error").
		Funcs(r.funcs()).
		Parse(string(src))
	if err != nil {
		return docconv.Errorf(docconv.EINVALID, "parsing transformation %q: %v", t.Definition, err)
	}
	r.tmpl = tmpl

	in := Input{Doc: &doc.Element, Params: t.Params}
	if in.Params == nil {
		in.Params = map[string]string{}
	}

	if err := tmpl.Execute(t.Output, in); err != nil {
		var appErr *docconv.Error
		if errors.As(err, &appErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("executing transformation %q: %w", t.Definition, err)
		}
		return fmt.Errorf("%w: %w", docconv.Errorf(docconv.EINVALID, "executing transformation %q failed", t.Definition), err)
	}
	return nil
}
