package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/cli/config"
	"github.com/secmon-lab/argus/pkg/usecase"
	"github.com/secmon-lab/argus/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSweep() *cli.Command {
	var retentionDays int
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "retention-days",
			Usage:       "Days to keep ledger rows",
			Value:       30,
			Sources:     cli.EnvVars("ARGUS_RETENTION_DAYS"),
			Destination: &retentionDays,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "sweep",
		Usage: "Delete ledger rows older than the retention age",
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

			uc := usecase.New(repo,
				usecase.WithRetention(time.Duration(retentionDays)*24*time.Hour),
			)

			deleted, err := uc.Sweep(ctx)
			if err != nil {
				return goerr.Wrap(err, "sweep failed")
			}

			logging.Default().Info("sweep done", "deleted", deleted)
			return nil
		},
	}
}
