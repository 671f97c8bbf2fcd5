package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/cli/config"
	"github.com/secmon-lab/argus/pkg/usecase"
	"github.com/secmon-lab/argus/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdCheck() *cli.Command {
	var concurrency int
	var repoCfg config.Repository
	var channelsCfg config.Channels
	var providerCfg config.Provider

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Maximum users checked in parallel",
			Value:       usecase.DefaultConcurrency,
			Sources:     cli.EnvVars("ARGUS_CONCURRENCY"),
			Destination: &concurrency,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, channelsCfg.Flags()...)
	flags = append(flags, providerCfg.Flags()...)

	return &cli.Command{
		Name:  "check",
		Usage: "Run one monitoring pass and print the summary",
		Flags: flags,
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

			ucOpts := []usecase.Option{
				usecase.WithProvider(prov),
				usecase.WithConcurrency(concurrency),
			}
			for _, ch := range channels {
				ucOpts = append(ucOpts, usecase.WithChannel(ch))
			}

			uc := usecase.New(repo, ucOpts...)

			start := time.Now()
			summary, err := uc.RunCheck(ctx)
			if err != nil {
				return goerr.Wrap(err, "check pass failed")
			}
			logging.Default().Info("check pass done",
				"checked", summary.Checked, "duration", time.Since(start))

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}
