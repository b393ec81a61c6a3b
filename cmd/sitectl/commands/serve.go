package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/atelier-theatral/sitectl/internal/logfields"
	"github.com/atelier-theatral/sitectl/internal/metrics"
	"github.com/atelier-theatral/sitectl/internal/schedule"
	"github.com/atelier-theatral/sitectl/internal/server"
	"github.com/atelier-theatral/sitectl/internal/watch"
)

// ServeCmd implements the 'serve' command: one build, then a static server,
// optionally rebuilding on source changes or on a timer.
type ServeCmd struct {
	Port         int           `short:"p" help:"Listen port (overrides config)"`
	Watch        bool          `short:"w" help:"Rebuild when the source tree changes"`
	RebuildEvery time.Duration `name:"rebuild-every" help:"Rebuild on a fixed interval (e.g. 15m); useful with a Git source"`
	Sandbox      bool          `help:"Run build and server inside the configured container image"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	port := cfg.Server.Port
	if s.Port != 0 {
		port = s.Port
	}

	// SIGINT and SIGTERM stop the server gracefully.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if s.Sandbox {
		args := []string{"serve"}
		if s.Port != 0 {
			args = append(args, "--port", strconv.Itoa(s.Port))
		}
		if s.Watch {
			args = append(args, "--watch")
		}
		if s.RebuildEvery > 0 {
			args = append(args, "--rebuild-every", s.RebuildEvery.String())
		}
		return runSandboxed(ctx, root, port, sandboxCommand(root, args...))
	}

	sourceDir, cleanup, err := resolveSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Server.Metrics {
		recorder = metrics.NewPrometheusRecorder(nil)
	}

	// The initial build must succeed before the server starts; rebuilds that
	// fail later keep the last good output in place.
	if _, err := runBuild(ctx, cfg, sourceDir, recorder); err != nil {
		return err
	}

	srv := server.New(server.Options{
		Port:     port,
		Dir:      cfg.Output.Directory,
		Recorder: recorder,
		Metrics:  cfg.Server.Metrics,
	})
	if err := srv.Start(ctx); err != nil {
		return err
	}

	rebuild := func(ctx context.Context) {
		src := sourceDir
		if cfg.Source.Git != nil {
			// Refresh the checkout before rebuilding.
			refreshed, refreshCleanup, rerr := resolveSource(ctx, cfg)
			if rerr != nil {
				slog.Warn("Source refresh failed; rebuilding from last checkout", logfields.Error(rerr))
			} else {
				defer refreshCleanup()
				src = refreshed
			}
		}
		if _, rerr := runBuild(ctx, cfg, src, recorder); rerr != nil {
			slog.Warn("Rebuild failed; keeping previous output", logfields.Error(rerr))
		}
	}

	if s.Watch {
		watcher := watch.New(sourceDir, 0, rebuild)
		go func() {
			if werr := watcher.Run(ctx); werr != nil {
				slog.Error("Watcher stopped", logfields.Error(werr))
			}
		}()
	}

	if s.RebuildEvery > 0 {
		scheduler, serr := schedule.New()
		if serr != nil {
			return serr
		}
		if serr := scheduler.EveryRebuild(s.RebuildEvery, rebuild); serr != nil {
			return serr
		}
		scheduler.Start()
		defer func() {
			if serr := scheduler.Stop(); serr != nil {
				slog.Warn("Scheduler shutdown error", logfields.Error(serr))
			}
		}()
	}

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
