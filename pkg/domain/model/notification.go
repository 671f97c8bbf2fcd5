package model

import (
	"time"

	"github.com/secmon-lab/argus/pkg/domain/types"
)

// DeliveryRecord is one row in the append-only notification history. It is
// the idempotency source for "was this appointment already notified on this
// channel", independent of the ledger's Notified flag.
type DeliveryRecord struct {
	ID     types.NotificationID
	UserID types.UserID
	// AppointmentID is empty for test deliveries, which bypass the ledger.
	AppointmentID types.AppointmentID
	Channel       types.Channel
	Outcome       types.DeliveryOutcome
	// Detail carries the failure reason for failed attempts.
	Detail string
	SentAt time.Time
}
