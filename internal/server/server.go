// Package server serves the generated site over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	derrors "github.com/atelier-theatral/sitectl/internal/errors"
	"github.com/atelier-theatral/sitectl/internal/logfields"
	"github.com/atelier-theatral/sitectl/internal/metrics"
)

// Options configures the static site server.
type Options struct {
	Port     int
	Dir      string           // directory served as the site root
	Recorder metrics.Recorder // nil means no metrics
	Metrics  bool             // expose /metrics when the recorder supports it
}

// Server is a static file server for the generated output directory.
type Server struct {
	opts Options
	srv  *http.Server
	ln   net.Listener
}

// New creates a server for the given options.
func New(opts Options) *Server {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Server{opts: opts}
}

// Start binds the listen port and begins serving. Binding happens before the
// serve goroutine starts so a busy port fails the command immediately instead
// of logging from the background.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.opts.Port)
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return derrors.PortInUse(s.opts.Port, err)
	}
	s.ln = ln

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.opts.Dir)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.opts.Metrics {
		if prom, ok := s.opts.Recorder.(*metrics.PrometheusRecorder); ok {
			mux.Handle("/metrics", prom.Handler())
		}
	}

	s.srv = &http.Server{
		Handler:           s.chain(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", logfields.Error(err))
		}
	}()

	slog.Info("Serving site",
		logfields.Path(s.opts.Dir),
		logfields.Port(s.opts.Port),
		logfields.URL(fmt.Sprintf("http://localhost:%d/", s.opts.Port)))
	return nil
}

// Addr returns the bound listen address, useful when port 0 was requested.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	slog.Info("Stopping HTTP server", logfields.Port(s.opts.Port))
	return s.srv.Shutdown(ctx)
}
