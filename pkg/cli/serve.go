package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/argus/pkg/cli/config"
	httpctrl "github.com/secmon-lab/argus/pkg/controller/http"
	"github.com/secmon-lab/argus/pkg/usecase"
	"github.com/secmon-lab/argus/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var triggerSecret string
	var retentionDays int
	var concurrency int
	var sweepAfterRun bool
	var repoCfg config.Repository
	var channelsCfg config.Channels
	var providerCfg config.Provider
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ARGUS_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "trigger-secret",
			Usage:       "Shared secret for the /api/cron/check trigger endpoint (endpoint disabled when empty)",
			Sources:     cli.EnvVars("ARGUS_TRIGGER_SECRET"),
			Destination: &triggerSecret,
		},
		&cli.IntFlag{
			Name:        "retention-days",
			Usage:       "Days to keep ledger rows before the retention sweep removes them",
			Value:       30,
			Sources:     cli.EnvVars("ARGUS_RETENTION_DAYS"),
			Destination: &retentionDays,
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Maximum users checked in parallel per pass",
			Value:       usecase.DefaultConcurrency,
			Sources:     cli.EnvVars("ARGUS_CONCURRENCY"),
			Destination: &concurrency,
		},
		&cli.BoolFlag{
			Name:        "sweep-after-run",
			Usage:       "Run an asynchronous retention sweep after each trigger pass",
			Value:       true,
			Sources:     cli.EnvVars("ARGUS_SWEEP_AFTER_RUN"),
			Destination: &sweepAfterRun,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, channelsCfg.Flags()...)
	flags = append(flags, providerCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			prov, err := providerCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize availability provider")
			}

			channels, err := channelsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize notification channels")
			}
			logging.Default().Info("Notification channels configured", "channels", channelsCfg)

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			ucOpts := []usecase.Option{
				usecase.WithProvider(prov),
				usecase.WithChannelFactory(channelsCfg.Factory()),
				usecase.WithConcurrency(concurrency),
				usecase.WithRetention(time.Duration(retentionDays) * 24 * time.Hour),
			}
			for _, ch := range channels {
				ucOpts = append(ucOpts, usecase.WithChannel(ch))
			}
			if catalog != nil {
				ucOpts = append(ucOpts, usecase.WithCatalog(catalog))
			}

			uc := usecase.New(repo, ucOpts...)

			srv := httpctrl.New(uc,
				httpctrl.WithTriggerSecret(triggerSecret),
				httpctrl.WithSweepAfterRun(sweepAfterRun),
			)
			if triggerSecret == "" {
				logging.Default().Warn("trigger secret not set, /api/cron/check is disabled")
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server failed")
			case <-ctx.Done():
				logging.Default().Info("Shutting down HTTP server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shut down HTTP server")
				}
			}

			return nil
		},
	}
}
