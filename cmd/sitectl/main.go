package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/atelier-theatral/sitectl/cmd/sitectl/commands"
	derrors "github.com/atelier-theatral/sitectl/internal/errors"
	"github.com/atelier-theatral/sitectl/internal/version"
)

func main() {
	cli := &commands.CLI{}
	kctx := kong.Parse(cli,
		kong.Name("sitectl"),
		kong.Description("Build and serve the Atelier théâtral de Longueuil website."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	if err := kctx.Run(&commands.Global{}); err != nil {
		adapter := derrors.NewCLIErrorAdapter(cli.Verbose)
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}
