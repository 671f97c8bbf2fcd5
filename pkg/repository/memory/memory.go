package memory

import (
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository used for tests and local development.
// Semantics mirror the firestore backend, including slot-key uniqueness.
type Memory struct {
	profile      *profileRepository
	preferences  *preferencesRepository
	appointment  *appointmentRepository
	notification *notificationRepository
	check        *checkRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		profile:      newProfileRepository(),
		preferences:  newPreferencesRepository(),
		appointment:  newAppointmentRepository(),
		notification: newNotificationRepository(),
		check:        newCheckRepository(),
	}
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Preferences() interfaces.PreferencesRepository {
	return m.preferences
}

func (m *Memory) Appointment() interfaces.AppointmentRepository {
	return m.appointment
}

func (m *Memory) Notification() interfaces.NotificationRepository {
	return m.notification
}

func (m *Memory) Check() interfaces.CheckRepository {
	return m.check
}

func (m *Memory) Close() error {
	return nil
}
