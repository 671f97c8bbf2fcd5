package config

import (
	"time"

	"github.com/secmon-lab/argus/pkg/service/provider"
	"github.com/urfave/cli/v3"
)

// Provider holds CLI flags for the availability provider client
type Provider struct {
	baseURL string
	rate    float64
	burst   int
	timeout time.Duration
}

// Flags returns CLI flags for provider configuration
func (x *Provider) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "provider-url",
			Usage:       "Availability provider base URL",
			Category:    "Provider",
			Sources:     cli.EnvVars("ARGUS_PROVIDER_URL"),
			Destination: &x.baseURL,
		},
		&cli.FloatFlag{
			Name:        "provider-rate",
			Usage:       "Provider requests per second across all workers",
			Category:    "Provider",
			Value:       provider.DefaultRatePerSec,
			Sources:     cli.EnvVars("ARGUS_PROVIDER_RATE"),
			Destination: &x.rate,
		},
		&cli.IntFlag{
			Name:        "provider-burst",
			Usage:       "Provider rate limiter burst size",
			Category:    "Provider",
			Value:       provider.DefaultRatePerSec,
			Sources:     cli.EnvVars("ARGUS_PROVIDER_BURST"),
			Destination: &x.burst,
		},
		&cli.DurationFlag{
			Name:        "provider-timeout",
			Usage:       "Timeout for one provider request",
			Category:    "Provider",
			Value:       provider.DefaultTimeout,
			Sources:     cli.EnvVars("ARGUS_PROVIDER_TIMEOUT"),
			Destination: &x.timeout,
		},
	}
}

// Configure builds the HTTP provider client.
func (x *Provider) Configure() (*provider.Client, error) {
	return provider.New(x.baseURL,
		provider.WithRateLimit(x.rate, x.burst),
		provider.WithTimeout(x.timeout),
	)
}
