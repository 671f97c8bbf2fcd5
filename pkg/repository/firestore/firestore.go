package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
)

// Firestore persists all monitoring state in one Firestore database.
// There are no multi-row transactions: every write is an independent
// per-document operation, and uniqueness is enforced through document IDs.
type Firestore struct {
	client       *firestore.Client
	profile      *profileRepository
	preferences  *preferencesRepository
	appointment  *appointmentRepository
	notification *notificationRepository
	check        *checkRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, mainly for tests
// sharing one project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.profile.collectionPrefix = prefix
		f.preferences.collectionPrefix = prefix
		f.appointment.collectionPrefix = prefix
		f.notification.collectionPrefix = prefix
		f.check.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:       client,
		profile:      newProfileRepository(client),
		preferences:  newPreferencesRepository(client),
		appointment:  newAppointmentRepository(client),
		notification: newNotificationRepository(client),
		check:        newCheckRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) Preferences() interfaces.PreferencesRepository {
	return f.preferences
}

func (f *Firestore) Appointment() interfaces.AppointmentRepository {
	return f.appointment
}

func (f *Firestore) Notification() interfaces.NotificationRepository {
	return f.notification
}

func (f *Firestore) Check() interfaces.CheckRepository {
	return f.check
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// CollectionName applies the collection prefix convention. The index
// migration uses it too, so indexes always land on the collections the
// repositories actually query.
func CollectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
