package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/atelier-theatral/sitectl/internal/config"
	"github.com/atelier-theatral/sitectl/internal/logfields"
	"github.com/atelier-theatral/sitectl/internal/metrics"
)

// Generator builds the static site from a source tree.
type Generator struct {
	cfg       *config.Config
	sourceDir string // resolved source root (may point into a build workspace)
	outputDir string // final output dir
	stageDir  string // ephemeral staging dir for the current build
	recorder  metrics.Recorder
	layout    *layout
}

// NewGenerator creates a generator reading from sourceDir and publishing to
// outputDir.
func NewGenerator(cfg *config.Config, sourceDir, outputDir string) *Generator {
	return &Generator{
		cfg:       cfg,
		sourceDir: filepath.Clean(sourceDir),
		outputDir: filepath.Clean(outputDir),
		recorder:  metrics.NoopRecorder{},
	}
}

// SetRecorder injects a metrics recorder (optional). Returns the generator for chaining.
func (g *Generator) SetRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		g.recorder = metrics.NoopRecorder{}
		return g
	}
	g.recorder = r
	return g
}

// BuildState carries mutable state across stages.
type BuildState struct {
	Generator *Generator
	Report    *BuildReport

	bodies       map[string]string  // page name -> rendered HTML body
	performances []*seatMapArtifact // rendered seat maps pending write
}

// seatMapArtifact pairs a seat map SVG with its output path.
type seatMapArtifact struct {
	relPath string
	svg     string
}

// Build runs the full generation pipeline and returns the report. On any
// fatal stage error the staging directory is discarded and the previous
// output is left untouched.
func (g *Generator) Build(ctx context.Context) (*BuildReport, error) {
	layout, err := newLayout()
	if err != nil {
		return nil, err
	}
	g.layout = layout

	bs := &BuildState{
		Generator: g,
		Report:    NewBuildReport(),
		bodies:    make(map[string]string),
	}

	slog.Info("Starting site generation",
		logfields.BuildID(bs.Report.BuildID),
		logfields.Path(g.sourceDir),
		"output", g.outputDir,
		"pages", len(g.cfg.Site.Pages))

	stages := []namedStage{
		{"prepare", stagePrepare},
		{"assets", stageAssets},
		{"pages", stagePages},
		{"seating", stageSeating},
		{"write", stageWrite},
		{"verify", stageVerify},
		{"publish", stagePublish},
	}

	err = runStages(ctx, bs, stages)
	bs.Report.Duration = time.Since(bs.Report.StartedAt)
	g.recorder.ObserveBuildDuration(bs.Report.Duration)
	g.recorder.IncBuildOutcome(string(bs.Report.Outcome()))

	if err != nil {
		g.abortStaging()
		return bs.Report, err
	}

	slog.Info("Site generated",
		logfields.BuildID(bs.Report.BuildID),
		"pages", bs.Report.Pages,
		"assets", bs.Report.Assets,
		"seat_maps", bs.Report.SeatMaps,
		logfields.DurationMS(float64(bs.Report.Duration.Milliseconds())))
	return bs.Report, nil
}

// stagePrepare creates the staging tree.
func stagePrepare(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	if err := g.beginStaging(); err != nil {
		return newFatalStageError("prepare", err)
	}
	if err := os.MkdirAll(filepath.Join(g.stageDir, "static"), 0o755); err != nil {
		return newFatalStageError("prepare", err)
	}
	return nil
}

// stageAssets copies the shared assets (logo, stylesheet) into staging.
func stageAssets(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	for _, name := range []string{"logo.png", "style.css"} {
		src := filepath.Join(g.sourceDir, name)
		if err := copyFile(src, filepath.Join(g.stageDir, "static", name)); err != nil {
			return newFatalStageError("assets", fmt.Errorf("copy %s: %w", name, err))
		}
		bs.Report.Assets++
	}
	return nil
}

// stagePages renders every page body and stages its images.
func stagePages(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	for _, page := range g.cfg.Site.Pages {
		select {
		case <-ctx.Done():
			return newCanceledStageError("pages", ctx.Err())
		default:
		}

		src := filepath.Join(g.sourceDir, page.Dir, "page.md")
		data, err := os.ReadFile(src)
		if err != nil {
			return newFatalStageError("pages", fmt.Errorf("page %s: %w", page.Name, err))
		}

		body, err := renderMarkdown(data)
		if err != nil {
			return newFatalStageError("pages", fmt.Errorf("render %s: %w", page.Name, err))
		}

		body, staged, err := stagePageImages(body, g.sourceDir, page.Dir, g.stageDir)
		if err != nil {
			return newFatalStageError("pages", err)
		}
		bs.Report.Assets += staged

		bs.bodies[page.Name] = body
		bs.Report.Pages++
		slog.Debug("Rendered page", logfields.Page(page.Name), "images", staged)
	}
	return nil
}

// stageSeating renders seat maps for pages whose source directory carries
// reservation files and appends the seating blocks to those page bodies.
func stageSeating(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	for _, page := range g.cfg.Site.Pages {
		performances, err := loadPerformances(filepath.Join(g.sourceDir, page.Dir))
		if err != nil {
			return newFatalStageError("seating", err)
		}
		for _, perf := range performances {
			rel := "static/" + perf.Stem + ".svg"
			bs.performances = append(bs.performances, &seatMapArtifact{
				relPath: rel,
				svg:     renderSeatMap(perf.Reserved),
			})

			block, err := g.layout.renderSeating(seatingContext{
				What:  perf.What,
				Where: perf.Where,
				When:  perf.When,
				SVG:   rel,
			})
			if err != nil {
				return newFatalStageError("seating", err)
			}
			bs.bodies[page.Name] += block
			bs.Report.SeatMaps++
		}
	}
	return nil
}

// stageWrite writes the seat maps and the final HTML pages into staging.
func stageWrite(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	for _, artifact := range bs.performances {
		dst := filepath.Join(g.stageDir, filepath.FromSlash(artifact.relPath))
		if err := os.WriteFile(dst, []byte(artifact.svg), 0o644); err != nil {
			return newFatalStageError("write", fmt.Errorf("write seat map: %w", err))
		}
	}

	for _, page := range g.cfg.Site.Pages {
		html, err := g.layout.renderPage(pageContext{
			Title:     g.cfg.Site.Title,
			Language:  g.cfg.Site.Language,
			Copyright: g.cfg.Site.Copyright,
			Pages:     g.cfg.Site.Pages,
			Page:      page,
		}, bs.bodies[page.Name])
		if err != nil {
			return newFatalStageError("write", err)
		}

		dst := filepath.Join(g.stageDir, page.Name+".html")
		if err := os.WriteFile(dst, []byte(html), 0o644); err != nil {
			return newFatalStageError("write", fmt.Errorf("write page %s: %w", page.Name, err))
		}
	}
	return nil
}

// stageVerify checks local link targets in the staged tree. Broken targets
// are reported as a warning; they do not block publication.
func stageVerify(_ context.Context, bs *BuildState) error {
	broken, err := VerifyLinks(bs.Generator.stageDir)
	if err != nil {
		return newFatalStageError("verify", err)
	}
	if len(broken) > 0 {
		for _, b := range broken {
			slog.Warn("Broken local link", logfields.File(b.File), "target", b.Target)
		}
		return newWarnStageError("verify", fmt.Errorf("%d broken local links", len(broken)))
	}
	return nil
}

// stagePublish promotes staging to the final output directory.
func stagePublish(_ context.Context, bs *BuildState) error {
	if err := bs.Generator.finalizeStaging(); err != nil {
		return newFatalStageError("publish", err)
	}
	return nil
}
