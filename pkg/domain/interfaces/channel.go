package interfaces

import (
	"context"

	"github.com/secmon-lab/argus/pkg/domain/types"
)

// NotificationChannel delivers one message to one destination. Channel
// implementations are external collaborators; a failure is reported as an
// error and recorded by the notifier, never retried internally beyond the
// notifier's own policy.
type NotificationChannel interface {
	// Kind identifies the channel for history records and preference
	// toggles.
	Kind() types.Channel

	// Send attempts one delivery. Implementations must respect ctx
	// cancellation and bound the attempt with a timeout.
	Send(ctx context.Context, destination, message string) error
}
