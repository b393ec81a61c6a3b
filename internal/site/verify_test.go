package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyLinks(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "static"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "static", "style.css"), []byte("body {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "troupe.html"), []byte(`<html><head>
<link rel="stylesheet" href="static/style.css">
</head><body>
<a href="acceuil.html">Accueil</a>
<a href="manquant.html">cassé</a>
<img src="static/perdu.jpg">
<a href="https://example.com/">externe</a>
<a href="mailto:info@example.com">courriel</a>
<a href="#haut">ancre</a>
</body></html>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "acceuil.html"), []byte("<html><body>ok</body></html>"), 0o644))

	broken, err := VerifyLinks(root)
	require.NoError(t, err)
	require.Len(t, broken, 2)

	targets := []string{broken[0].Target, broken[1].Target}
	assert.Contains(t, targets, "manquant.html")
	assert.Contains(t, targets, "static/perdu.jpg")
	assert.Equal(t, "troupe.html", broken[0].File)
}

func TestVerifyLinksCleanTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(`<html><body><a href="index.html#section">soi</a></body></html>`), 0o644))

	broken, err := VerifyLinks(root)
	require.NoError(t, err)
	assert.Empty(t, broken)
}

func TestLocalRef(t *testing.T) {
	tests := []struct {
		val   string
		want  string
		local bool
	}{
		{"static/style.css", "static/style.css", true},
		{"troupe.html#photos", "troupe.html", true},
		{"spectacles.html?v=2", "spectacles.html", true},
		{"https://example.com/x", "", false},
		{"//cdn.example.com/x", "", false},
		{"mailto:info@example.com", "", false},
		{"tel:+15145551234", "", false},
		{"data:image/png;base64,AAAA", "", false},
		{"#haut", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := localRef(tt.val)
		assert.Equal(t, tt.local, ok, "value %q", tt.val)
		assert.Equal(t, tt.want, got, "value %q", tt.val)
	}
}
