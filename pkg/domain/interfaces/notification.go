package interfaces

import (
	"context"

	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

// NotificationRepository defines the interface for the append-only
// notification history
type NotificationRepository interface {
	// Create appends one delivery attempt record.
	Create(ctx context.Context, r *model.DeliveryRecord) (*model.DeliveryRecord, error)

	// ListByAppointment returns all delivery records for an appointment.
	// The notifier consults this before sending to keep campaigns
	// idempotent across passes.
	ListByAppointment(ctx context.Context, appointmentID types.AppointmentID) ([]*model.DeliveryRecord, error)

	// ListByUser returns the user's delivery records, newest first.
	ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.DeliveryRecord, error)
}
