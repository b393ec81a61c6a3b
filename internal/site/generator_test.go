package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-theatral/sitectl/internal/config"
)

func testConfig(pages ...config.Page) *config.Config {
	return &config.Config{
		Site: config.SiteConfig{
			Title:     "l'Atelier théâtral de Longueuil",
			Copyright: "© Atelier théâtral de Longueuil",
			Language:  "fr",
			Pages:     pages,
		},
	}
}

func writeSiteFixture(t *testing.T, pages ...config.Page) string {
	t.Helper()
	sourceDir := filepath.Join(t.TempDir(), "site")
	require.NoError(t, os.MkdirAll(sourceDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "logo.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "style.css"), []byte("body {}"), 0o644))
	for _, page := range pages {
		dir := filepath.Join(sourceDir, page.Dir)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "page.md"),
			[]byte("# "+page.Label+"\n\nContenu de la page.\n"), 0o644))
	}
	return sourceDir
}

func TestGeneratorBuild(t *testing.T) {
	pages := []config.Page{
		{Name: "index", Label: "Accueil", Dir: "acceuil"},
		{Name: "troupe", Label: "La troupe", Dir: "troupe"},
	}
	sourceDir := writeSiteFixture(t, pages...)
	outputDir := filepath.Join(t.TempDir(), ".www")

	gen := NewGenerator(testConfig(pages...), sourceDir, outputDir)
	report, err := gen.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, report.Outcome())
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 2, report.Assets)
	assert.Zero(t, report.SeatMaps)

	for _, name := range []string{"index.html", "troupe.html", "static/logo.png", "static/style.css"} {
		assert.FileExists(t, filepath.Join(outputDir, filepath.FromSlash(name)))
	}

	html, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	require.NoError(t, err)
	// html/template escapes the apostrophe in the configured title.
	assert.Contains(t, string(html), "l&#39;Atelier théâtral de Longueuil - Accueil")
	assert.Contains(t, string(html), `href="troupe.html"`)
	assert.Contains(t, string(html), "Contenu de la page.")

	// No stray staging directories survive a successful build.
	assert.NoDirExists(t, outputDir+"_stage")
	assert.NoDirExists(t, outputDir+".prev")
}

func TestGeneratorBuildIdempotent(t *testing.T) {
	pages := []config.Page{{Name: "index", Label: "Accueil", Dir: "acceuil"}}
	sourceDir := writeSiteFixture(t, pages...)
	outputDir := filepath.Join(t.TempDir(), ".www")
	cfg := testConfig(pages...)

	_, err := NewGenerator(cfg, sourceDir, outputDir).Build(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	require.NoError(t, err)

	_, err = NewGenerator(cfg, sourceDir, outputDir).Build(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGeneratorBuildSeating(t *testing.T) {
	pages := []config.Page{{Name: "reservations", Label: "Réservations", Dir: "reservations"}}
	sourceDir := writeSiteFixture(t, pages...)
	writeReservation(t, filepath.Join(sourceDir, "reservations"), "2026-05-30.txt",
		"Les Fourberies de Scapin\nSalle Jean-Louis-Millette\nSamedi 30 mai, 20h\nA1\nB12\n")
	outputDir := filepath.Join(t.TempDir(), ".www")

	report, err := NewGenerator(testConfig(pages...), sourceDir, outputDir).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.SeatMaps)

	assert.FileExists(t, filepath.Join(outputDir, "static", "2026-05-30.svg"))

	html, err := os.ReadFile(filepath.Join(outputDir, "reservations.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Les Fourberies de Scapin")
	assert.Contains(t, string(html), `src="static/2026-05-30.svg"`)
}

func TestGeneratorBuildMissingPageIsFatal(t *testing.T) {
	pages := []config.Page{
		{Name: "index", Label: "Accueil", Dir: "acceuil"},
		{Name: "troupe", Label: "La troupe", Dir: "troupe"},
	}
	sourceDir := writeSiteFixture(t, pages...)
	outputDir := filepath.Join(t.TempDir(), ".www")
	cfg := testConfig(pages...)

	// First build succeeds and publishes.
	_, err := NewGenerator(cfg, sourceDir, outputDir).Build(context.Background())
	require.NoError(t, err)

	// Break a page source and rebuild. The old output must survive.
	require.NoError(t, os.Remove(filepath.Join(sourceDir, "troupe", "page.md")))
	report, err := NewGenerator(cfg, sourceDir, outputDir).Build(context.Background())
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, report.Outcome())

	assert.FileExists(t, filepath.Join(outputDir, "troupe.html"))
	assert.NoDirExists(t, outputDir+"_stage")
}

func TestGeneratorBuildCanceled(t *testing.T) {
	pages := []config.Page{{Name: "index", Label: "Accueil", Dir: "acceuil"}}
	sourceDir := writeSiteFixture(t, pages...)
	outputDir := filepath.Join(t.TempDir(), ".www")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewGenerator(testConfig(pages...), sourceDir, outputDir).Build(ctx)
	require.Error(t, err)
	assert.Equal(t, OutcomeCanceled, report.Outcome())
	assert.NoFileExists(t, filepath.Join(outputDir, "index.html"))
}
