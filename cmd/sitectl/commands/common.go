package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/atelier-theatral/sitectl/internal/buildlog"
	"github.com/atelier-theatral/sitectl/internal/config"
	"github.com/atelier-theatral/sitectl/internal/content"
	derrors "github.com/atelier-theatral/sitectl/internal/errors"
	"github.com/atelier-theatral/sitectl/internal/lint"
	"github.com/atelier-theatral/sitectl/internal/logfields"
	"github.com/atelier-theatral/sitectl/internal/metrics"
	"github.com/atelier-theatral/sitectl/internal/site"
	"github.com/atelier-theatral/sitectl/internal/workspace"
)

// historyDBPath is where build history lives, relative to the project root.
const historyDBPath = ".sitectl/builds.db"

// defaultConfigFile mirrors the kong default on CLI.Config.
const defaultConfigFile = "sitectl.yaml"

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitectl.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the static site from its source tree"`
	Serve   ServeCmd   `cmd:"" help:"Build the site and serve it over HTTP"`
	Lint    LintCmd    `cmd:"" help:"Validate the site source tree without building"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
	History HistoryCmd `cmd:"" help:"Show past build outcomes"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the configuration file (config.Load validates it).
func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}

// sandboxCommand builds the argv for re-running sitectl inside the container,
// carrying over the global flags so the inner run sees the same configuration.
func sandboxCommand(root *CLI, args ...string) []string {
	cmd := []string{"sitectl"}
	if root.Config != defaultConfigFile {
		cmd = append(cmd, "-c", root.Config)
	}
	if root.Verbose {
		cmd = append(cmd, "-v")
	}
	return append(cmd, args...)
}

// resolveSource returns the directory holding the site source. A Git source
// is materialized in an ephemeral workspace; the returned cleanup removes it.
// Local sources are used in place with a no-op cleanup.
func resolveSource(ctx context.Context, cfg *config.Config) (string, func(), error) {
	if cfg.Source.Git == nil {
		return cfg.Source.Directory, func() {}, nil
	}

	manager := workspace.NewManager("")
	if err := manager.Create(); err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if err := manager.Cleanup(); err != nil {
			slog.Warn("Failed to cleanup workspace", logfields.Error(err))
		}
	}

	fetcher := content.NewFetcher(manager.GetPath(), *cfg.Source.Git)
	checkout, err := fetcher.Fetch(ctx)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return filepath.Join(checkout, cfg.Source.Directory), cleanup, nil
}

// runLint lints the source tree and fails when errors are present. The
// formatted report goes to stdout regardless of outcome.
func runLint(cfg *config.Config, sourceDir string, lintCfg *lint.Config) error {
	result, err := lint.NewLinter(lintCfg, cfg).Run(sourceDir)
	if err != nil {
		return err
	}

	format := "text"
	if lintCfg != nil && lintCfg.Format != "" {
		format = lintCfg.Format
	}
	if err := lint.NewFormatter(format).Format(os.Stdout, result, sourceDir); err != nil {
		return err
	}

	if result.HasErrors() {
		return derrors.LintFailed(result.ErrorCount())
	}
	return nil
}

// runBuild lints and then generates the site, recording the outcome in the
// build history. Linting failures stop the run before generation starts.
func runBuild(ctx context.Context, cfg *config.Config, sourceDir string, recorder metrics.Recorder) (*site.BuildReport, error) {
	if err := runLint(cfg, sourceDir, &lint.Config{Quiet: true}); err != nil {
		return nil, err
	}

	generator := site.NewGenerator(cfg, sourceDir, cfg.Output.Directory).SetRecorder(recorder)
	report, err := generator.Build(ctx)
	if report != nil {
		recordBuild(ctx, report)
	}
	if err != nil {
		return report, derrors.BuildFailed("generate", err)
	}
	return report, nil
}

// recordBuild appends the report to the history database, best effort.
func recordBuild(ctx context.Context, report *site.BuildReport) {
	if err := os.MkdirAll(filepath.Dir(historyDBPath), 0o755); err != nil {
		slog.Warn("Failed to create history directory", logfields.Error(err))
		return
	}
	store, err := buildlog.Open(historyDBPath)
	if err != nil {
		slog.Warn("Failed to open build history", logfields.Error(err))
		return
	}
	defer func() {
		_ = store.Close()
	}()

	rec := buildlog.Record{
		BuildID:        report.BuildID,
		StartedAt:      report.StartedAt,
		Duration:       report.Duration,
		Outcome:        string(report.Outcome()),
		Pages:          report.Pages,
		Assets:         report.Assets,
		SeatMaps:       report.SeatMaps,
		Errors:         len(report.Errors),
		Warnings:       len(report.Warnings),
		StageDurations: report.StageDurations,
	}
	if err := store.Append(ctx, rec); err != nil {
		slog.Warn("Failed to record build history", logfields.Error(err))
	}
}
