package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/declarative/internal/showcase"
	"github.com/vango-dev/declarative/pkg/metrics"
	"github.com/vango-dev/declarative/pkg/render"
	"github.com/vango-dev/declarative/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live showcase server",
		Long: `Run the showcase with live updates.

Signals are written with POST /signals/{name}; every connected browser
receives the re-rendered page over a websocket. Prometheus metrics are
served on server.metricsPath.

Examples:
  declarative serve
  declarative serve --port=8080 --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg)
			registry := prometheus.NewRegistry()
			collector := metrics.New(metrics.WithRegistry(registry))

			sc := server.DefaultConfig()
			sc.Address = cfg.Address()
			sc.Title = cfg.Name
			sc.ShutdownTimeout = cfg.ShutdownDuration()
			sc.MetricsPath = cfg.Server.MetricsPath
			sc.Render = render.RendererConfig{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent}

			app := showcase.New(showcase.WithLogger(logger), showcase.WithObserver(collector))
			srv, err := server.New(app, sc,
				server.WithLogger(logger),
				server.WithMetrics(collector),
				server.WithGatherer(registry),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd, "Serving on http://%s", sc.Address)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from declarative.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from declarative.json)")

	return cmd
}
