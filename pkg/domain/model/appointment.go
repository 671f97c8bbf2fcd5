package model

import (
	"fmt"
	"time"

	"github.com/secmon-lab/argus/pkg/domain/types"
)

// Appointment is one observed slot in the ledger. A row is inserted at
// most once per (user, country, city, date); Notified moves false to true
// only, after at least one successful delivery.
type Appointment struct {
	ID       types.AppointmentID
	UserID   types.UserID
	Country  string
	City     string
	Date     string // appointment date as YYYY-MM-DD
	Notified bool
	// Payload keeps the raw provider response for the slot. The provider
	// contract is opaque, so it is stored as-is for diagnostics.
	Payload   map[string]any
	CreatedAt time.Time
}

// SlotKey returns the ledger uniqueness key for this appointment.
func (a *Appointment) SlotKey() string {
	return SlotKey(a.UserID, a.Country, a.City, a.Date)
}

// SlotKey builds the (user, country, city, date) uniqueness key. It doubles
// as the document ID in the firestore backend, which is what makes
// duplicate discovery a rejected insert instead of a second row.
func SlotKey(userID types.UserID, country, city, date string) string {
	return fmt.Sprintf("%s|%s|%s|%s", userID, country, city, date)
}

// Slot is one open appointment opportunity as reported by the
// availability provider.
type Slot struct {
	Country string
	City    string
	Date    string
	Payload map[string]any
}

// NewAppointment builds an unnotified ledger row from a provider slot.
func NewAppointment(userID types.UserID, slot Slot) *Appointment {
	return &Appointment{
		ID:      types.NewAppointmentID(),
		UserID:  userID,
		Country: slot.Country,
		City:    slot.City,
		Date:    slot.Date,
		Payload: slot.Payload,
	}
}
