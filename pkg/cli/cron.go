package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
	"github.com/secmon-lab/argus/pkg/utils/logging"
	"github.com/secmon-lab/argus/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// cmdCron is a local stand-in for the production scheduler: it fires the
// trigger endpoint of a running server on a fixed interval. Deployments
// use Cloud Scheduler or similar instead.
func cmdCron() *cli.Command {
	var target string
	var secret string
	var interval time.Duration

	return &cli.Command{
		Name:  "cron",
		Usage: "Fire the trigger endpoint periodically (local development)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "target",
				Usage:       "Base URL of the running server",
				Value:       "http://localhost:8080",
				Sources:     cli.EnvVars("ARGUS_CRON_TARGET"),
				Destination: &target,
			},
			&cli.StringFlag{
				Name:        "trigger-secret",
				Usage:       "Shared secret of the trigger endpoint",
				Required:    true,
				Sources:     cli.EnvVars("ARGUS_TRIGGER_SECRET"),
				Destination: &secret,
			},
			&cli.DurationFlag{
				Name:        "interval",
				Usage:       "Interval between trigger calls",
				Value:       time.Minute,
				Sources:     cli.EnvVars("ARGUS_CRON_INTERVAL"),
				Destination: &interval,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			client := &http.Client{Timeout: 5 * time.Minute}
			endpoint := target + "/api/cron/check"

			fire := func() {
				if err := fireTrigger(ctx, client, endpoint, secret); err != nil {
					logger.Error("trigger call failed", "endpoint", endpoint, "error", err)
					return
				}
				logger.Info("trigger fired", "endpoint", endpoint)
			}

			scheduler := cron.New()
			if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", interval), fire); err != nil {
				return goerr.Wrap(err, "failed to schedule trigger", goerr.V("interval", interval))
			}

			logger.Info("Starting local trigger driver",
				"endpoint", endpoint, "interval", interval)

			// One immediate pass so a fresh dev setup gets feedback right away.
			fire()
			scheduler.Start()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			stopCtx := scheduler.Stop()
			<-stopCtx.Done()
			return nil
		},
	}
}

func fireTrigger(ctx context.Context, client *http.Client, endpoint, secret string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build trigger request")
	}
	req.Header.Set("Authorization", "Bearer "+secret)

	resp, err := client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "trigger request failed")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return goerr.New("trigger returned non-OK status", goerr.V("status", resp.StatusCode))
	}

	return nil
}
