package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init writes an example configuration file at configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Site: SiteConfig{
			Title:     DefaultTitle,
			Copyright: DefaultCopyright,
			Language:  DefaultLanguage,
			Pages:     DefaultPages(),
		},
		Source: SourceConfig{
			Directory: DefaultSourceDir,
		},
		Output: OutputConfig{
			Directory: DefaultOutputDir,
			Clean:     true,
		},
		Server: ServerConfig{
			Port: DefaultPort,
		},
		Sandbox: SandboxConfig{
			Engine:    "docker",
			Image:     DefaultSandboxImage,
			MountPath: DefaultSandboxMount,
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
