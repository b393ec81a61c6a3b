package sandbox

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// execCommandFunc creates the exec.Cmd for an engine invocation. Tests inject
// a fake to capture the argument list.
type execCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// cliEngine implements Run for CLI-driven engines. Docker and Podman embed it
// and differ only in the binary, the version probe, and extra run arguments.
type cliEngine struct {
	name        string
	binaryPath  string
	execCommand execCommandFunc
	// extraRunArgs are injected after "run" (Podman rootless needs --userns=keep-id).
	extraRunArgs []string
}

func (e *cliEngine) command(ctx context.Context, args ...string) *exec.Cmd {
	if e.execCommand != nil {
		return e.execCommand(ctx, e.binaryPath, args...)
	}
	return exec.CommandContext(ctx, e.binaryPath, args...)
}

// runArgs builds the full argument list for a "run" invocation.
func (e *cliEngine) runArgs(opts RunOptions) []string {
	args := []string{"run"}
	args = append(args, e.extraRunArgs...)
	if opts.Remove {
		args = append(args, "--rm")
	}
	if opts.Interactive {
		args = append(args, "-i")
	}
	if opts.TTY {
		args = append(args, "-t")
	}
	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}
	for _, volume := range opts.Volumes {
		args = append(args, "-v", volume)
	}
	for _, port := range opts.Ports {
		args = append(args, "-p", port)
	}

	// Deterministic env ordering for stable logs and tests.
	keys := make([]string, 0, len(opts.Env))
	for k := range opts.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, opts.Env[k]))
	}

	args = append(args, opts.Image)
	return append(args, opts.Command...)
}

// Run starts a container and waits for it to exit. A non-zero container exit
// code is reported through RunResult, not as an error.
func (e *cliEngine) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	cmd := e.command(ctx, e.runArgs(opts)...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	err := cmd.Run()
	result := &RunResult{}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Error = err
		}
	}
	return result, nil
}

func (e *cliEngine) versionOutput(ctx context.Context, args ...string) (string, error) {
	var out strings.Builder
	cmd := e.command(ctx, args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("get %s version: %w", e.name, err)
	}
	return strings.TrimSpace(out.String()), nil
}

// DockerEngine drives the docker CLI.
type DockerEngine struct {
	*cliEngine
}

// NewDockerEngine locates the docker binary.
func NewDockerEngine() *DockerEngine {
	path, _ := exec.LookPath("docker")
	return &DockerEngine{cliEngine: &cliEngine{name: "docker", binaryPath: path}}
}

// Name returns the engine name.
func (e *DockerEngine) Name() string { return string(EngineTypeDocker) }

// Available checks that the docker daemon responds.
func (e *DockerEngine) Available() bool {
	if e.binaryPath == "" {
		return false
	}
	return e.command(context.Background(), "version", "--format", "{{.Server.Version}}").Run() == nil
}

// Version returns the docker server version.
func (e *DockerEngine) Version(ctx context.Context) (string, error) {
	return e.versionOutput(ctx, "version", "--format", "{{.Server.Version}}")
}

// PodmanEngine drives the podman CLI.
type PodmanEngine struct {
	*cliEngine
}

// NewPodmanEngine locates the podman binary.
func NewPodmanEngine() *PodmanEngine {
	path, _ := exec.LookPath("podman")
	return &PodmanEngine{cliEngine: &cliEngine{
		name:       "podman",
		binaryPath: path,
		// Rootless podman must keep the invoking UID inside the container so
		// files written to the bind mount stay owned by the user.
		extraRunArgs: []string{"--userns=keep-id"},
	}}
}

// Name returns the engine name.
func (e *PodmanEngine) Name() string { return string(EngineTypePodman) }

// Available checks that podman responds.
func (e *PodmanEngine) Available() bool {
	if e.binaryPath == "" {
		return false
	}
	return e.command(context.Background(), "version", "--format", "{{.Client.Version}}").Run() == nil
}

// Version returns the podman client version.
func (e *PodmanEngine) Version(ctx context.Context) (string, error) {
	return e.versionOutput(ctx, "version", "--format", "{{.Client.Version}}")
}
