package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type appointmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAppointmentRepository(client *firestore.Client) *appointmentRepository {
	return &appointmentRepository{client: client}
}

func (r *appointmentRepository) collection() string {
	return CollectionName(r.collectionPrefix, "appointments")
}

// Create inserts a ledger row using the slot key as document ID. Firestore
// rejects a second Create on the same ID with AlreadyExists, which is the
// whole uniqueness mechanism: re-observing a known slot fails here and
// never reaches the notifier.
func (r *appointmentRepository) Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	created := *a
	if created.ID == "" {
		created.ID = types.NewAppointmentID()
	}
	created.Notified = false
	created.CreatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.collection()).Doc(created.SlotKey())
	if _, err := docRef.Create(ctx, &created); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(interfaces.ErrDuplicate, "slot already recorded", goerr.V("slot_key", created.SlotKey()))
		}
		return nil, goerr.Wrap(err, "failed to create appointment", goerr.V("slot_key", created.SlotKey()))
	}

	return &created, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id types.AppointmentID) (*model.Appointment, error) {
	docSnap, err := r.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var a model.Appointment
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode appointment", goerr.V("id", id))
	}

	return &a, nil
}

func (r *appointmentRepository) ListUnnotified(ctx context.Context, userID types.UserID) ([]*model.Appointment, error) {
	iter := r.client.Collection(r.collection()).
		Where("UserID", "==", userID.String()).
		Where("Notified", "==", false).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.Appointment
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate appointments", goerr.V("user_id", userID))
		}

		var a model.Appointment
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode appointment", goerr.V("doc_id", docSnap.Ref.ID))
		}

		result = append(result, &a)
	}

	return result, nil
}

func (r *appointmentRepository) MarkNotified(ctx context.Context, id types.AppointmentID) error {
	docSnap, err := r.findByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := docSnap.Ref.Update(ctx, []firestore.Update{
		{Path: "Notified", Value: true},
	}); err != nil {
		return goerr.Wrap(err, "failed to mark appointment notified", goerr.V("id", id))
	}

	return nil
}

func (r *appointmentRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	iter := r.client.Collection(r.collection()).
		Where("CreatedAt", "<", cutoff).
		Documents(ctx)
	defer iter.Stop()

	deleted := 0
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, goerr.Wrap(err, "failed to iterate stale appointments")
		}

		if _, err := docSnap.Ref.Delete(ctx); err != nil {
			return deleted, goerr.Wrap(err, "failed to delete appointment", goerr.V("doc_id", docSnap.Ref.ID))
		}
		deleted++
	}

	return deleted, nil
}

// findByID locates an appointment document by its ID field. Documents are
// keyed by slot key, so ID lookups go through a query.
func (r *appointmentRepository) findByID(ctx context.Context, id types.AppointmentID) (*firestore.DocumentSnapshot, error) {
	iter := r.client.Collection(r.collection()).
		Where("ID", "==", id.String()).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "appointment not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find appointment", goerr.V("id", id))
	}

	return docSnap, nil
}
