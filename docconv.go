// Package docconv converts remote HTML documents into transformed output
// documents such as Markdown or EPUB-ready XHTML. A conversion normalizes
// the source HTML, optionally inlines its images as data URIs, and applies
// a template-driven transformation that writes either one output stream or
// a multi-entry archive.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, zip/, rod/).
package docconv
