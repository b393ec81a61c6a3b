package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageUIDStable(t *testing.T) {
	a := imageUID("/tmp/build/site", "troupe", "groupe.jpg")
	b := imageUID("/home/user/site", "troupe", "groupe.jpg")
	assert.Equal(t, a, b, "hash should only depend on the source-relative path")
	assert.Len(t, a, 40)

	c := imageUID("/tmp/build/site", "spectacles", "groupe.jpg")
	assert.NotEqual(t, a, c, "same file name in another page must get another UID")
}

func TestStagePageImages(t *testing.T) {
	sourceRoot := t.TempDir()
	stageDir := t.TempDir()
	pageDir := filepath.Join(sourceRoot, "troupe")
	require.NoError(t, os.MkdirAll(pageDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(stageDir, "static"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(pageDir, "groupe.jpg"), []byte("jpeg bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pageDir, "notes.txt"), []byte("ignore me"), 0o644))

	body := `<p><img src="groupe.jpg" alt="la troupe"></p>`
	rewritten, staged, err := stagePageImages(body, sourceRoot, "troupe", stageDir)
	require.NoError(t, err)
	assert.Equal(t, 1, staged)

	uid := imageUID(sourceRoot, "troupe", "groupe.jpg")
	assert.Contains(t, rewritten, `src="static/`+uid+`.jpg"`)
	assert.NotContains(t, rewritten, `src="groupe.jpg"`)

	copied, err := os.ReadFile(filepath.Join(stageDir, "static", uid+".jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(copied))
}

func TestStagePageImagesLeavesUnreferencedBodies(t *testing.T) {
	sourceRoot := t.TempDir()
	stageDir := t.TempDir()
	pageDir := filepath.Join(sourceRoot, "acceuil")
	require.NoError(t, os.MkdirAll(pageDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(stageDir, "static"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pageDir, "affiche.png"), []byte("png"), 0o644))

	body := "<p>pas d'image ici</p>"
	rewritten, staged, err := stagePageImages(body, sourceRoot, "acceuil", stageDir)
	require.NoError(t, err)
	assert.Equal(t, 1, staged, "images are staged even when the body does not reference them")
	assert.Equal(t, body, rewritten)
	assert.False(t, strings.Contains(rewritten, "static/"))
}
