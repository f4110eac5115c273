package docconv

// MarkdownConverter converts HTML to Markdown.
type MarkdownConverter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
