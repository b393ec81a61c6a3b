// Package workspace manages the per-run build workspace, an isolated
// directory scoped to a single build and removed afterwards.
//
// Ephemeral mode creates timestamped directories (e.g., sitectl-20260830-122336)
// suitable for one-shot builds, cleaning up completely after use.
//
// Persistent mode uses a fixed directory path that persists across builds,
// enabling incremental content updates from a git source.
package workspace
