package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/rxview/internal/config"
	"github.com/vango-dev/rxview/internal/demo"
	"github.com/vango-dev/rxview/pkg/component"
	"github.com/vango-dev/rxview/pkg/live"
	"github.com/vango-dev/rxview/pkg/metrics"
)

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the example components",
		Long: `Serve the example app over HTTP. Each browser tab gets its own
component tree, updated over a websocket.

Examples:
  rxview serve
  rxview serve --port=3000
  RXVIEW_LOG_LEVEL=debug rxview serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Serve.Port = port
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger := cfg.Logger(cmd.ErrOrStderr())

	compOpts := []component.Option{
		component.WithLogger(logger.With("component", "engine")),
		component.WithTracer(otel.Tracer(cfg.Tracing.Name)),
	}
	liveOpts := []live.Option{
		live.WithTitle(cfg.Serve.Title),
		live.WithLogger(logger),
		live.WithWriteTimeout(cfg.Serve.WriteTimeout.Std()),
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		col := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace(cfg.Metrics.Namespace))
		compOpts = append(compOpts, component.WithRecorder(col))
		liveOpts = append(liveOpts, live.WithMetrics(reg))
	}
	liveOpts = append(liveOpts, live.WithComponentOptions(compOpts...))

	app := live.New(demo.App, liveOpts...)
	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     app.Handler(),
		ReadTimeout: cfg.Serve.ReadTimeout.Std(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	success(cmd, "Serving on http://%s", cfg.Addr())
	if cfg.Metrics.Enabled {
		info(cmd, "Metrics at http://%s/metrics", cfg.Addr())
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	info(cmd, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	return errors.Join(err, app.Close())
}
