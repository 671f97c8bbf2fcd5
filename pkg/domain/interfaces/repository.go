package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Profile() ProfileRepository
	Preferences() PreferencesRepository
	Appointment() AppointmentRepository
	Notification() NotificationRepository
	Check() CheckRepository

	Close() error
}
