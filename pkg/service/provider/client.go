package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/utils/safe"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds one provider call so a stuck request never
	// blocks the orchestrator's worker pool.
	DefaultTimeout = 15 * time.Second

	// DefaultRatePerSec is the client-side token bucket rate. The
	// provider's real limits are unknown; a deployment tunes this to
	// whatever the provider publishes.
	DefaultRatePerSec = 2
)

// Client queries the availability provider over HTTP. All calls share one
// token-bucket limiter so concurrent workers collectively respect the
// provider's rate limit.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

var _ interfaces.AvailabilityProvider = &Client{}

// Option is a functional option for client configuration
type Option func(*Client)

// WithTimeout sets the per-call HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRateLimit sets the shared token bucket (requests per second and burst)
func WithRateLimit(perSec float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// WithHTTPClient replaces the underlying HTTP client (tests)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates an availability provider client for the given base URL
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, goerr.New("provider base URL is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRatePerSec), DefaultRatePerSec),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchSlots returns the currently open slots for one (country, city)
// pair. Zero slots is a normal result, not an error.
func (c *Client) FetchSlots(ctx context.Context, country, city string) ([]model.Slot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, goerr.Wrap(err, "provider rate limiter wait cancelled")
	}

	q := url.Values{}
	q.Set("country", country)
	q.Set("city", city)
	endpoint := c.baseURL + "/slots?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build provider request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "provider request failed",
			goerr.V("country", country), goerr.V("city", city))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("provider returned non-OK status",
			goerr.V("status", resp.StatusCode),
			goerr.V("country", country), goerr.V("city", city))
	}

	var body slotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, goerr.Wrap(err, "failed to decode provider response")
	}

	slots := make([]model.Slot, 0, len(body.Slots))
	for _, s := range body.Slots {
		slots = append(slots, model.Slot{
			Country: s.Country,
			City:    s.City,
			Date:    s.Date,
			Payload: s.Details,
		})
	}

	return slots, nil
}
