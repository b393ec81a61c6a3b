package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownBasics(t *testing.T) {
	out, err := renderMarkdown([]byte("# Titre\n\nUn paragraphe."))
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="titre">Titre</h1>`)
	assert.Contains(t, out, "<p>Un paragraphe.</p>")
}

func TestRenderMarkdownTables(t *testing.T) {
	src := "| Pièce | Date |\n| --- | --- |\n| Scapin | mai |\n"
	out, err := renderMarkdown([]byte(src))
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Scapin</td>")
}

func TestRenderMarkdownTypographer(t *testing.T) {
	out, err := renderMarkdown([]byte(`"bonjour" -- et voila...`))
	require.NoError(t, err)
	assert.Contains(t, out, "&ldquo;bonjour&rdquo;")
	assert.Contains(t, out, "&ndash;")
	assert.Contains(t, out, "&hellip;")
}

func TestRenderMarkdownRawHTMLPassthrough(t *testing.T) {
	out, err := renderMarkdown([]byte(`<div class="troupe">membres</div>`))
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="troupe">membres</div>`)
}

func TestRenderMarkdownDefinitionList(t *testing.T) {
	src := "Scapin\n: valet rusé\n"
	out, err := renderMarkdown([]byte(src))
	require.NoError(t, err)
	assert.Contains(t, out, "<dl>")
	assert.Contains(t, out, "<dt>Scapin</dt>")
	assert.Contains(t, out, "<dd>valet rusé</dd>")
}
