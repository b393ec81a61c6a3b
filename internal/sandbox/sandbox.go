package sandbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/atelier-theatral/sitectl/internal/config"
	derrors "github.com/atelier-theatral/sitectl/internal/errors"
	"github.com/atelier-theatral/sitectl/internal/logfields"
)

// Sandbox runs a sitectl command inside the configured container image with
// the project directory bind-mounted at the configured path.
type Sandbox struct {
	cfg    config.SandboxConfig
	engine Engine
}

// New resolves the configured container engine.
func New(cfg config.SandboxConfig) (*Sandbox, error) {
	engine, err := NewEngine(EngineType(cfg.Engine))
	if err != nil {
		return nil, derrors.SandboxUnavailable(cfg.Engine, err)
	}
	return &Sandbox{cfg: cfg, engine: engine}, nil
}

// NewWithEngine injects a pre-built engine, used by tests.
func NewWithEngine(cfg config.SandboxConfig, engine Engine) *Sandbox {
	return &Sandbox{cfg: cfg, engine: engine}
}

// Engine returns the resolved engine.
func (s *Sandbox) Engine() Engine { return s.engine }

// Run executes command in the sandbox: the pinned image, the project
// directory mounted read-write at the mount path, the serve port published,
// and a TTY attached so interrupts reach the contained process.
func (s *Sandbox) Run(ctx context.Context, projectDir string, port int, command []string) error {
	version, err := s.engine.Version(ctx)
	if err != nil {
		return derrors.SandboxUnavailable(s.engine.Name(), err)
	}
	slog.Info("Running in sandbox",
		logfields.Engine(s.engine.Name()),
		logfields.Image(s.cfg.Image),
		"engine_version", version)

	result, err := s.engine.Run(ctx, RunOptions{
		Image:       s.cfg.Image,
		Command:     command,
		WorkDir:     s.cfg.MountPath,
		Volumes:     []string{fmt.Sprintf("%s:%s", projectDir, s.cfg.MountPath)},
		Ports:       []string{fmt.Sprintf("%d:%d", port, port)},
		Remove:      true,
		TTY:         true,
		Interactive: true,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	})
	if err != nil {
		return derrors.SandboxRunError(s.cfg.Image, -1, err)
	}
	if result.Error != nil {
		return derrors.SandboxRunError(s.cfg.Image, result.ExitCode, result.Error)
	}
	if result.ExitCode != 0 {
		return derrors.SandboxRunError(s.cfg.Image, result.ExitCode,
			fmt.Errorf("container exited with code %d", result.ExitCode))
	}
	return nil
}
