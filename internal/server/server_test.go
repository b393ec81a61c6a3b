package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/atelier-theatral/sitectl/internal/errors"
)

func startTestServer(t *testing.T, dir string) (*Server, string) {
	t.Helper()
	srv := New(Options{Port: 0, Dir: dir})
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, fmt.Sprintf("http://%s", srv.Addr().String())
}

func TestServeStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte("<html><body>Accueil</body></html>"), 0o644))

	_, base := startTestServer(t, dir)

	resp, err := http.Get(base + "/index.html")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Accueil")
}

func TestServeNotFound(t *testing.T) {
	_, base := startTestServer(t, t.TempDir())

	resp, err := http.Get(base + "/manquant.html")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	_, base := startTestServer(t, t.TempDir())

	resp, err := http.Get(base + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(body))
}

func TestStartPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()
	port := ln.Addr().(*net.TCPAddr).Port

	srv := New(Options{Port: port, Dir: t.TempDir()})
	err = srv.Start(context.Background())
	require.Error(t, err)

	var siteErr *derrors.SiteError
	require.ErrorAs(t, err, &siteErr)
	assert.Equal(t, derrors.CategoryServer, siteErr.Category)
}

func TestShutdownStopsServing(t *testing.T) {
	srv, base := startTestServer(t, t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	_, err := http.Get(base + "/healthz")
	assert.Error(t, err)
}
