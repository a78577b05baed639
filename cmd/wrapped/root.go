package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/omarshaarawi/hoopswrapped/internal/api/espn"
	"github.com/omarshaarawi/hoopswrapped/internal/api/fantasy"
	"github.com/omarshaarawi/hoopswrapped/internal/config"
	"github.com/omarshaarawi/hoopswrapped/internal/metrics"
	"github.com/omarshaarawi/hoopswrapped/internal/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wrapped",
		Short:         "Season wrap-up for ESPN fantasy basketball leagues",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				slog.Debug("No .env file loaded", "error", err)
			}
		},
	}
	root.AddCommand(serveCmd(), reportCmd())
	return root
}

type app struct {
	cfg      *config.Config
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	wrapped  *service.WrappedService
}

func newApp() (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	espnClient := espn.NewClient(cfg.ESPNAPI, m)
	espnAPI := espn.NewAPI(espnClient)
	fantasyAPI := fantasy.NewAPI(espnAPI)

	wrapped, err := service.NewWrappedService(fantasyAPI, cfg.Wrapped, m)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		registry: registry,
		metrics:  m,
		wrapped:  wrapped,
	}, nil
}
