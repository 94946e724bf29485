package livedoc

import (
	"bytes"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdown converts section text to HTML fragments. Built once; goldmark
// instances are safe for concurrent use.
var markdown = newMarkdown()

// newMarkdown builds the converter with GFM extensions and syntax
// highlighting for fenced code blocks. Raw HTML embedded in the Markdown
// source is never emitted (html.WithUnsafe stays off), so author content
// cannot inject markup into the rendered document.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
}

// MarkdownToHTML converts Markdown section text to an HTML fragment.
// Empty input returns the empty string. The function is pure: identical
// input always yields byte-identical output.
func MarkdownToHTML(text string) string {
	if text == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		// Goldmark only fails on writer errors; bytes.Buffer never does.
		// Degrade to nothing rather than leak unconverted text into HTML.
		return ""
	}
	return buf.String()
}
