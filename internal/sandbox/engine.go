// Package sandbox runs site builds inside a container so the host only needs
// a container engine, not the site toolchain.
package sandbox

import (
	"context"
	"fmt"
	"io"
)

// Engine is a container runtime driven through its CLI.
type Engine interface {
	// Name returns the engine name (docker or podman).
	Name() string
	// Available checks that the engine binary exists and responds.
	Available() bool
	// Version returns the engine version string.
	Version(ctx context.Context) (string, error)
	// Run starts a container and waits for it to exit.
	Run(ctx context.Context, opts RunOptions) (*RunResult, error)
}

// RunOptions describes one containerized run.
type RunOptions struct {
	// Image is the pinned image to run.
	Image string
	// Command is the command to run inside the container.
	Command []string
	// WorkDir is the working directory inside the container.
	WorkDir string
	// Env contains environment variables.
	Env map[string]string
	// Volumes are bind mounts in "host:container" format.
	Volumes []string
	// Ports are port mappings in "host:container" format.
	Ports []string
	// Remove deletes the container after exit.
	Remove bool
	// TTY allocates a pseudo-TTY so signals and line editing work.
	TTY bool
	// Interactive keeps stdin open.
	Interactive bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunResult is the outcome of a containerized run.
type RunResult struct {
	ExitCode int
	Error    error
}

// EngineType identifies the container engine.
type EngineType string

const (
	EngineTypeDocker EngineType = "docker"
	EngineTypePodman EngineType = "podman"
)

// ErrEngineNotAvailable is returned when no usable container engine exists.
type ErrEngineNotAvailable struct {
	Engine string
	Reason string
}

func (e *ErrEngineNotAvailable) Error() string {
	return fmt.Sprintf("container engine %q is not available: %s", e.Engine, e.Reason)
}

// NewEngine returns the preferred engine, falling back to the other one when
// the preferred binary is missing.
func NewEngine(preferred EngineType) (Engine, error) {
	switch preferred {
	case EngineTypeDocker:
		if e := NewDockerEngine(); e.Available() {
			return e, nil
		}
		if e := NewPodmanEngine(); e.Available() {
			return e, nil
		}
		return nil, &ErrEngineNotAvailable{Engine: "docker", Reason: "docker is not installed and podman fallback is also unavailable"}
	case EngineTypePodman:
		if e := NewPodmanEngine(); e.Available() {
			return e, nil
		}
		if e := NewDockerEngine(); e.Available() {
			return e, nil
		}
		return nil, &ErrEngineNotAvailable{Engine: "podman", Reason: "podman is not installed and docker fallback is also unavailable"}
	default:
		return nil, fmt.Errorf("unknown container engine type: %s", preferred)
	}
}
