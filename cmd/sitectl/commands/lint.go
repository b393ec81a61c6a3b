package commands

import (
	"context"

	"github.com/atelier-theatral/sitectl/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet  bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
}

func (l *LintCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	sourceDir, cleanup, err := resolveSource(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return runLint(cfg, sourceDir, &lint.Config{Quiet: l.Quiet, Format: l.Format})
}
