package usecase

import (
	"time"

	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

const (
	// DefaultConcurrency bounds the number of users checked in parallel
	// during one orchestrator pass.
	DefaultConcurrency = 8

	// DefaultRetention is how long ledger rows are kept before the sweep
	// removes them.
	DefaultRetention = 30 * 24 * time.Hour
)

// ChannelFactory builds a channel client from ad-hoc credentials. It backs
// the test-delivery endpoint, where the token comes from the request body
// instead of server configuration.
type ChannelFactory func(ch types.Channel, token string) (interfaces.NotificationChannel, error)

type UseCases struct {
	repo     interfaces.Repository
	provider interfaces.AvailabilityProvider
	channels map[types.Channel]interfaces.NotificationChannel
	factory  ChannelFactory
	catalog  *model.Catalog

	concurrency int
	retention   time.Duration
	now         func() time.Time
}

type Option func(*UseCases)

// WithProvider sets the availability provider queried on each pass.
func WithProvider(p interfaces.AvailabilityProvider) Option {
	return func(uc *UseCases) {
		uc.provider = p
	}
}

// WithChannel registers a delivery channel. Users whose preferences enable
// an unregistered channel are skipped on that channel.
func WithChannel(ch interfaces.NotificationChannel) Option {
	return func(uc *UseCases) {
		uc.channels[ch.Kind()] = ch
	}
}

// WithChannelFactory sets the factory used for ad-hoc test deliveries.
func WithChannelFactory(f ChannelFactory) Option {
	return func(uc *UseCases) {
		uc.factory = f
	}
}

// WithCatalog enables country/city code validation on preference writes.
func WithCatalog(c *model.Catalog) Option {
	return func(uc *UseCases) {
		uc.catalog = c
	}
}

// WithConcurrency bounds the per-pass user fan-out.
func WithConcurrency(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.concurrency = n
		}
	}
}

// WithRetention sets the ledger retention age used by Sweep.
func WithRetention(d time.Duration) Option {
	return func(uc *UseCases) {
		if d > 0 {
			uc.retention = d
		}
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		channels:    map[types.Channel]interfaces.NotificationChannel{},
		concurrency: DefaultConcurrency,
		retention:   DefaultRetention,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
