package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Server  ServerConfig  `yaml:"server"`
	Sandbox SandboxConfig `yaml:"sandbox"`
}

// SiteConfig describes the site identity and its page set.
type SiteConfig struct {
	Title     string `yaml:"title"`
	Copyright string `yaml:"copyright"`
	Language  string `yaml:"language,omitempty"`
	Pages     []Page `yaml:"pages,omitempty"`
}

// Page is a single navigable page of the site.
// Name is the output slug (<name>.html), Label the navigation text, and Dir
// the source directory under the source root. Name and Dir are derived from
// Label when omitted.
type Page struct {
	Name  string `yaml:"name,omitempty"`
	Label string `yaml:"label"`
	Dir   string `yaml:"dir,omitempty"`
}

// SourceConfig locates the site source tree. When Git is set the source is
// cloned into the build workspace before generation.
type SourceConfig struct {
	Directory string     `yaml:"directory,omitempty"`
	Git       *GitSource `yaml:"git,omitempty"`
}

// GitSource points the source tree at a git remote.
type GitSource struct {
	URL          string `yaml:"url"`
	Branch       string `yaml:"branch,omitempty"`
	ShallowDepth int    `yaml:"shallow_depth,omitempty"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory,omitempty"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// ServerConfig holds the static file server settings.
type ServerConfig struct {
	Port    int  `yaml:"port,omitempty"`
	Metrics bool `yaml:"metrics"`
}

// SandboxConfig holds the containerized execution settings.
type SandboxConfig struct {
	Engine    string `yaml:"engine,omitempty"` // docker or podman
	Image     string `yaml:"image,omitempty"`  // pinned base image tag
	MountPath string `yaml:"mount_path,omitempty"`
}

// Load loads configuration from the specified file. A missing file is not an
// error: the defaults reproduce the fixed contract (port 8080, pinned image,
// the standard page set) without any configuration surface.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads environment variables from .env/.env.local if present.
// Existing process environment variables are not overwritten.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
			return
		}
	}
}
