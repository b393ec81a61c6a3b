package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, cfg.Site.Title)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	assert.True(t, cfg.Output.Clean)
	assert.Equal(t, DefaultSandboxImage, cfg.Sandbox.Image)
	assert.Len(t, cfg.Site.Pages, 7)

	// index page reads from the historical "acceuil" directory
	assert.Equal(t, "index", cfg.Site.Pages[0].Name)
	assert.Equal(t, "acceuil", cfg.Site.Pages[0].Dir)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitectl.yaml")
	content := `
site:
  title: Troupe de test
  pages:
    - label: Accueil
      name: index
      dir: acceuil
    - label: Réalisations
server:
  port: 9000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Troupe de test", cfg.Site.Title)
	assert.Equal(t, 9000, cfg.Server.Port)

	// name and dir derived from the label when omitted
	require.Len(t, cfg.Site.Pages, 2)
	assert.Equal(t, "realisations", cfg.Site.Pages[1].Name)
	assert.Equal(t, "realisations", cfg.Site.Pages[1].Dir)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("SITE_TITLE", "Titre via env")

	dir := t.TempDir()
	path := filepath.Join(dir, "sitectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  title: ${SITE_TITLE}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Titre via env", cfg.Site.Title)
}

func TestValidateRejectsDuplicatePages(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Site.Pages = append(cfg.Site.Pages, Page{Name: "index", Label: "Doublon", Dir: "doublon"})

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate page name")
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Server.Port = 70000

	require.Error(t, Validate(cfg))
}

func TestValidateRejectsUnknownEngine(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Sandbox.Engine = "rocket"

	require.Error(t, Validate(cfg))
}

func TestValidateRequiresGitURL(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Source.Git = &GitSource{Branch: "main"}

	require.Error(t, Validate(cfg))
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitectl.yaml")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, cfg.Site.Title)
}
