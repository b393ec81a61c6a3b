package site

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// newMarkdown builds the converter used for page bodies: GFM tables plus
// footnotes and definition lists, with typographic replacement of straight
// quotes, dashes, ellipses and angle quotes (guillemets). Raw HTML in page
// sources is passed through unchanged.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
			extension.Typographer,
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(ghtml.WithUnsafe()),
	)
}

// renderMarkdown converts a page source to an HTML fragment.
func renderMarkdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := newMarkdown().Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
