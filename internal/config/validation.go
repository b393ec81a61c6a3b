package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atelier-theatral/sitectl/internal/errors"
	"github.com/atelier-theatral/sitectl/internal/util/sets"
)

// Validate checks the configuration after defaults have been applied.
func Validate(cfg *Config) error {
	if len(cfg.Site.Pages) == 0 {
		return errors.ValidationFailed("site.pages", "at least one page is required")
	}

	seen := sets.New[string]()
	for _, p := range cfg.Site.Pages {
		if p.Label == "" {
			return errors.ValidationFailed("site.pages", "page label must not be empty")
		}
		if p.Name == "" {
			return errors.ValidationFailed("site.pages", fmt.Sprintf("page %q has no derivable name", p.Label))
		}
		if strings.ContainsAny(p.Name, "/\\") {
			return errors.ValidationFailed("site.pages", fmt.Sprintf("page name %q must not contain path separators", p.Name))
		}
		if seen.Has(p.Name) {
			return errors.ValidationFailed("site.pages", fmt.Sprintf("duplicate page name %q", p.Name))
		}
		seen.Add(p.Name)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return errors.ValidationFailed("server.port", fmt.Sprintf("port %d out of range", cfg.Server.Port))
	}

	if cfg.Source.Git != nil && cfg.Source.Git.URL == "" {
		return errors.ValidationFailed("source.git.url", "git source requires a url")
	}

	switch cfg.Sandbox.Engine {
	case "docker", "podman":
	default:
		return errors.ValidationFailed("sandbox.engine", fmt.Sprintf("unsupported engine %q", cfg.Sandbox.Engine))
	}
	if !filepath.IsAbs(cfg.Sandbox.MountPath) {
		return errors.ValidationFailed("sandbox.mount_path", "mount path must be absolute")
	}

	return nil
}
