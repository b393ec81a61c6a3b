package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/atelier-theatral/sitectl/internal/logfields"
	"github.com/atelier-theatral/sitectl/internal/metrics"
	"github.com/atelier-theatral/sitectl/internal/sandbox"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output  string `short:"o" help:"Output directory for the generated site (overrides config)"`
	Sandbox bool   `help:"Run the build inside the configured container image"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}

	ctx := context.Background()
	if b.Sandbox {
		args := []string{"build"}
		if b.Output != "" {
			args = append(args, "-o", b.Output)
		}
		return runSandboxed(ctx, root, cfg.Server.Port, sandboxCommand(root, args...))
	}

	sourceDir, cleanup, err := resolveSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := runBuild(ctx, cfg, sourceDir, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	slog.Info("Build complete",
		logfields.BuildID(report.BuildID),
		"outcome", string(report.Outcome()),
		"output", cfg.Output.Directory)
	return nil
}

// runSandboxed re-runs the given sitectl command inside the pinned container
// image with the current directory mounted at the configured path.
func runSandboxed(ctx context.Context, root *CLI, port int, command []string) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	projectDir, err := os.Getwd()
	if err != nil {
		return err
	}

	sb, err := sandbox.New(cfg.Sandbox)
	if err != nil {
		return err
	}
	return sb.Run(ctx, projectDir, port, command)
}
