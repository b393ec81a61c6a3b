package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-theatral/sitectl/internal/config"
	derrors "github.com/atelier-theatral/sitectl/internal/errors"
)

// initSourceRepo creates a local repository with one committed file and
// returns its path for use as a file:// remote.
func initSourceRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	commitFile(t, repo, dir, "style.css", "body {}", "initial site")
	return dir, repo
}

func commitFile(t *testing.T, repo *git.Repository, dir, name, content, message string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestFetchClones(t *testing.T) {
	remote, _ := initSourceRepo(t)
	workspace := t.TempDir()

	fetcher := NewFetcher(workspace, config.GitSource{URL: remote})
	path, err := fetcher.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(workspace, "source"), path)
	assert.FileExists(t, filepath.Join(path, "style.css"))
}

func TestFetchUpdatesExistingCheckout(t *testing.T) {
	remote, repo := initSourceRepo(t)
	workspace := t.TempDir()
	fetcher := NewFetcher(workspace, config.GitSource{URL: remote, Branch: "master"})

	path, err := fetcher.Fetch(context.Background())
	require.NoError(t, err)

	commitFile(t, repo, remote, "logo.png", "png", "add logo")

	path, err = fetcher.Fetch(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(path, "logo.png"))
}

func TestFetchDiscardsLocalEdits(t *testing.T) {
	remote, _ := initSourceRepo(t)
	workspace := t.TempDir()
	fetcher := NewFetcher(workspace, config.GitSource{URL: remote, Branch: "master"})

	path, err := fetcher.Fetch(context.Background())
	require.NoError(t, err)

	// Scribble over the checkout; the next fetch resets it.
	require.NoError(t, os.WriteFile(filepath.Join(path, "style.css"), []byte("tampered"), 0o644))

	_, err = fetcher.Fetch(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(path, "style.css"))
	require.NoError(t, err)
	assert.Equal(t, "body {}", string(data))
}

func TestFetchBadRemote(t *testing.T) {
	fetcher := NewFetcher(t.TempDir(), config.GitSource{URL: filepath.Join(t.TempDir(), "missing")})

	_, err := fetcher.Fetch(context.Background())
	require.Error(t, err)

	var siteErr *derrors.SiteError
	require.ErrorAs(t, err, &siteErr)
	assert.Equal(t, derrors.CategoryContent, siteErr.Category)
}
