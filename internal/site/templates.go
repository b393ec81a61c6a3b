package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/atelier-theatral/sitectl/internal/config"
)

// Page layout shared by every generated page. The body fragment produced by
// the markdown stage is inserted verbatim between header and footer.
const headerTemplate = `<!doctype html>
<html lang="{{ .Language }}">
<head>
  <meta charset="utf-8">
  <link rel="stylesheet" href="static/style.css">
  <title>{{ .Title }} - {{ .Page.Label }}</title>
</head>
<body>
  <header>
    <img src="static/logo.png" />
    <nav>
    {{- range .Pages }}
      <li><a href="{{ .Name }}.html">{{ .Label }}</a></li>
    {{- end }}
    </nav>
  </header>
  <main>
`

const footerTemplate = `
  </main>
  <footer>
    <p>{{ .Copyright }}</p>
  </footer>
</body>
</html>
`

// Seating block appended to the ticket sales page, one per performance.
const seatingTemplate = `
<table>
  <tr>
    <th>{{ .What }}</th><th>{{ .Where }}</th><th>{{ .When }}</th>
  </tr>
  <tr>
    <td colspan="3"><img src="{{ .SVG }}" /></td>
  </tr>
</table>
`

// pageContext is the data passed to the header and footer templates.
type pageContext struct {
	Title     string
	Language  string
	Copyright string
	Pages     []config.Page
	Page      config.Page
}

// seatingContext is the data passed to the seating template.
type seatingContext struct {
	What  string
	Where string
	When  string
	SVG   string
}

// layout holds the parsed page templates.
type layout struct {
	header  *template.Template
	footer  *template.Template
	seating *template.Template
}

func newLayout() (*layout, error) {
	header, err := template.New("header").Parse(headerTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse header template: %w", err)
	}
	footer, err := template.New("footer").Parse(footerTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse footer template: %w", err)
	}
	seating, err := template.New("seating").Parse(seatingTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse seating template: %w", err)
	}
	return &layout{header: header, footer: footer, seating: seating}, nil
}

// renderPage wraps a body fragment in the shared header and footer.
func (l *layout) renderPage(ctx pageContext, body string) (string, error) {
	var sb strings.Builder
	if err := l.header.Execute(&sb, ctx); err != nil {
		return "", fmt.Errorf("render header for %s: %w", ctx.Page.Name, err)
	}
	sb.WriteString(body)
	if err := l.footer.Execute(&sb, ctx); err != nil {
		return "", fmt.Errorf("render footer for %s: %w", ctx.Page.Name, err)
	}
	return sb.String(), nil
}

// renderSeating renders one performance block.
func (l *layout) renderSeating(ctx seatingContext) (string, error) {
	var sb strings.Builder
	if err := l.seating.Execute(&sb, ctx); err != nil {
		return "", fmt.Errorf("render seating block: %w", err)
	}
	return sb.String(), nil
}
