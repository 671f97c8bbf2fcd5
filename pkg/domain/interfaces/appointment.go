package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

// AppointmentRepository defines the interface for the appointment ledger
type AppointmentRepository interface {
	// Create inserts a new ledger row. The row is keyed by its slot key;
	// inserting an already-recorded (user, country, city, date) tuple
	// returns ErrDuplicate and must not modify the existing row.
	Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error)

	// Get retrieves an appointment by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id types.AppointmentID) (*model.Appointment, error)

	// ListUnnotified returns the user's appointments with Notified still
	// false, oldest first. Failed campaigns are retried from this list on
	// the next pass.
	ListUnnotified(ctx context.Context, userID types.UserID) ([]*model.Appointment, error)

	// MarkNotified flips Notified to true. The transition is monotonic;
	// marking an already-notified appointment is a no-op.
	MarkNotified(ctx context.Context, id types.AppointmentID) error

	// DeleteOlderThan removes appointments created before the cutoff
	// regardless of notified state, returning the number of deleted rows.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
