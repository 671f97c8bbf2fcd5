package interfaces

import (
	"context"

	"github.com/secmon-lab/argus/pkg/domain/model"
)

// AvailabilityProvider is the sole source of truth for open slots. The
// contract is deliberately opaque: zero or more slots per (country, city)
// pair, and any call may fail. Implementations must bound each call with
// a timeout so a stuck request cannot block the orchestrator's pool.
type AvailabilityProvider interface {
	FetchSlots(ctx context.Context, country, city string) ([]model.Slot, error)
}
