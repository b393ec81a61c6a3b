// Package content fetches the site source tree from a Git remote into the
// build workspace. Local source directories bypass this package entirely.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/atelier-theatral/sitectl/internal/config"
	derrors "github.com/atelier-theatral/sitectl/internal/errors"
	"github.com/atelier-theatral/sitectl/internal/logfields"
)

// checkoutDirName is the directory under the workspace holding the clone.
const checkoutDirName = "source"

// Fetcher clones or updates the configured source repository.
type Fetcher struct {
	workspaceDir string
	src          config.GitSource
}

// NewFetcher creates a fetcher materializing the clone under workspaceDir.
func NewFetcher(workspaceDir string, src config.GitSource) *Fetcher {
	return &Fetcher{workspaceDir: workspaceDir, src: src}
}

// Fetch ensures a current checkout and returns its path. A missing checkout
// is cloned; an existing one is fetched and fast-forwarded.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	repoPath := filepath.Join(f.workspaceDir, checkoutDirName)
	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err != nil {
		return f.clone(ctx, repoPath)
	}
	return f.update(ctx, repoPath)
}

func (f *Fetcher) clone(ctx context.Context, repoPath string) (string, error) {
	slog.Debug("Cloning source repository", logfields.URL(f.src.URL), logfields.Path(repoPath))
	if err := os.RemoveAll(repoPath); err != nil {
		return "", derrors.WorkspaceError("clear checkout", err)
	}

	opts := &git.CloneOptions{URL: f.src.URL}
	if f.src.Branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + f.src.Branch)
		opts.SingleBranch = true
	}
	if f.src.ShallowDepth > 0 {
		opts.Depth = f.src.ShallowDepth
	}

	repository, err := git.PlainCloneContext(ctx, repoPath, false, opts)
	if err != nil {
		return "", classifyFetchError(f.src.URL, err)
	}

	if ref, herr := repository.Head(); herr == nil {
		slog.Info("Source repository cloned",
			logfields.URL(f.src.URL),
			slog.String("commit", shortHash(ref.Hash().String())),
			logfields.Path(repoPath))
	} else {
		slog.Info("Source repository cloned", logfields.URL(f.src.URL), logfields.Path(repoPath))
	}
	return repoPath, nil
}

func (f *Fetcher) update(ctx context.Context, repoPath string) (string, error) {
	repository, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", derrors.ContentCloneError(f.src.URL, fmt.Errorf("open checkout: %w", err))
	}
	slog.Debug("Updating source repository", logfields.URL(f.src.URL), logfields.Path(repoPath))

	fetchOpts := &git.FetchOptions{
		RemoteName: "origin",
		Tags:       git.NoTags,
		RefSpecs:   []ggitcfg.RefSpec{"+refs/heads/*:refs/remotes/origin/*"},
	}
	if f.src.ShallowDepth > 0 {
		fetchOpts.Depth = f.src.ShallowDepth
	}
	if err := repository.FetchContext(ctx, fetchOpts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return "", classifyFetchError(f.src.URL, err)
	}

	branch := f.src.Branch
	if branch == "" {
		branch = "main"
	}
	remoteRef, err := repository.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
	if err != nil {
		return "", derrors.ContentCloneError(f.src.URL, fmt.Errorf("resolve origin/%s: %w", branch, err))
	}

	wt, err := repository.Worktree()
	if err != nil {
		return "", derrors.ContentCloneError(f.src.URL, fmt.Errorf("worktree: %w", err))
	}
	// Hard reset to the remote head. The checkout is build-owned; local edits
	// do not belong here and are discarded.
	if err := wt.Reset(&git.ResetOptions{Commit: remoteRef.Hash(), Mode: git.HardReset}); err != nil {
		return "", derrors.ContentCloneError(f.src.URL, fmt.Errorf("reset to origin/%s: %w", branch, err))
	}

	slog.Info("Source repository updated",
		logfields.URL(f.src.URL),
		slog.String("branch", branch),
		slog.String("commit", shortHash(remoteRef.Hash().String())))
	return repoPath, nil
}

// classifyFetchError separates transient network failures, which callers may
// retry, from permanent ones.
func classifyFetchError(url string, err error) error {
	l := strings.ToLower(err.Error())
	if strings.Contains(l, "timeout") || strings.Contains(l, "i/o timeout") ||
		strings.Contains(l, "connection refused") || strings.Contains(l, "no such host") ||
		strings.Contains(l, "temporary failure") {
		return derrors.ContentNetworkError(url, err)
	}
	return derrors.ContentCloneError(url, err)
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
