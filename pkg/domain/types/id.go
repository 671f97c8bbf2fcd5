package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidID is returned when an identifier is not a well-formed UUID
var ErrInvalidID = goerr.New("invalid ID")

// UserID identifies a user profile. It is a client-generated UUID v4:
// the browser issues it once and reuses it on every request.
type UserID string

// NewUserID generates a new UUID v4 UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// String returns the string representation of the user ID
func (id UserID) String() string {
	return string(id)
}

// Validate checks that the user ID is a well-formed UUID
func (id UserID) Validate() error {
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(ErrInvalidID, "user ID must be a valid UUID", goerr.V("id", string(id)))
	}
	return nil
}

// AppointmentID identifies a discovered appointment slot in the ledger
type AppointmentID string

// NewAppointmentID generates a new UUID v4 AppointmentID
func NewAppointmentID() AppointmentID {
	return AppointmentID(uuid.New().String())
}

// String returns the string representation of the appointment ID
func (id AppointmentID) String() string {
	return string(id)
}

// NotificationID identifies a single delivery attempt record
type NotificationID string

// NewNotificationID generates a new UUID v4 NotificationID
func NewNotificationID() NotificationID {
	return NotificationID(uuid.New().String())
}

// String returns the string representation of the notification ID
func (id NotificationID) String() string {
	return string(id)
}

// CheckID identifies one orchestrator pass record for one user
type CheckID string

// NewCheckID generates a new UUID v4 CheckID
func NewCheckID() CheckID {
	return CheckID(uuid.New().String())
}

// String returns the string representation of the check ID
func (id CheckID) String() string {
	return string(id)
}
