package config

import (
	"github.com/atelier-theatral/sitectl/internal/util/slug"
)

// Fixed contract values. These reproduce the historical build-and-serve
// behavior when no configuration file is present.
const (
	DefaultTitle     = "l'Atelier théâtral de Longueuil"
	DefaultCopyright = "© Atelier théâtral de Longueuil"
	DefaultLanguage  = "fr"

	DefaultSourceDir = "site"
	DefaultOutputDir = ".www"

	DefaultPort = 8080

	// DefaultSandboxImage is the pinned base image tag for sandboxed runs.
	DefaultSandboxImage = "docker.io/library/debian:bookworm-slim"
	DefaultSandboxMount = "/work"
)

// DefaultPages is the canonical navigation in display order. The index page
// historically reads its source from the "acceuil" directory (sic).
func DefaultPages() []Page {
	return []Page{
		{Name: "index", Label: "Accueil", Dir: "acceuil"},
		{Name: "programme", Label: "Programme"},
		{Name: "qui-sommes-nous", Label: "Qui sommes-nous ?"},
		{Name: "realisations", Label: "Réalisations"},
		{Name: "commanditaires", Label: "Commanditaires"},
		{Name: "contact", Label: "Contact"},
		{Name: "vente-de-billets", Label: "Vente de billets"},
	}
}

// ApplyDefaults fills in zero values and derives page names and directories.
func ApplyDefaults(cfg *Config) {
	if cfg.Site.Title == "" {
		cfg.Site.Title = DefaultTitle
	}
	if cfg.Site.Copyright == "" {
		cfg.Site.Copyright = DefaultCopyright
	}
	if cfg.Site.Language == "" {
		cfg.Site.Language = DefaultLanguage
	}
	if len(cfg.Site.Pages) == 0 {
		cfg.Site.Pages = DefaultPages()
	}
	for i := range cfg.Site.Pages {
		p := &cfg.Site.Pages[i]
		if p.Name == "" {
			p.Name = slug.Make(p.Label)
		}
		if p.Dir == "" {
			p.Dir = p.Name
		}
	}

	if cfg.Source.Directory == "" {
		cfg.Source.Directory = DefaultSourceDir
	}
	if cfg.Source.Git != nil && cfg.Source.Git.ShallowDepth == 0 {
		// Only current content is needed for a build.
		cfg.Source.Git.ShallowDepth = 1
	}

	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
		cfg.Output.Clean = true
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}

	if cfg.Sandbox.Engine == "" {
		cfg.Sandbox.Engine = "docker"
	}
	if cfg.Sandbox.Image == "" {
		cfg.Sandbox.Image = DefaultSandboxImage
	}
	if cfg.Sandbox.MountPath == "" {
		cfg.Sandbox.MountPath = DefaultSandboxMount
	}
}
