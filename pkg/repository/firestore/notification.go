package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type notificationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newNotificationRepository(client *firestore.Client) *notificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) collection() string {
	return CollectionName(r.collectionPrefix, "notification_history")
}

func (r *notificationRepository) Create(ctx context.Context, rec *model.DeliveryRecord) (*model.DeliveryRecord, error) {
	created := *rec
	if created.ID == "" {
		created.ID = types.NewNotificationID()
	}
	if created.SentAt.IsZero() {
		created.SentAt = time.Now().UTC()
	}

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Create(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create delivery record", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *notificationRepository) ListByAppointment(ctx context.Context, appointmentID types.AppointmentID) ([]*model.DeliveryRecord, error) {
	iter := r.client.Collection(r.collection()).
		Where("AppointmentID", "==", appointmentID.String()).
		Documents(ctx)
	defer iter.Stop()

	return collectDeliveryRecords(iter)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.DeliveryRecord, error) {
	q := r.client.Collection(r.collection()).
		Where("UserID", "==", userID.String()).
		OrderBy("SentAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	return collectDeliveryRecords(iter)
}

func collectDeliveryRecords(iter *firestore.DocumentIterator) ([]*model.DeliveryRecord, error) {
	var result []*model.DeliveryRecord
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate delivery records")
		}

		var rec model.DeliveryRecord
		if err := docSnap.DataTo(&rec); err != nil {
			return nil, goerr.Wrap(err, "failed to decode delivery record", goerr.V("doc_id", docSnap.Ref.ID))
		}

		result = append(result, &rec)
	}

	return result, nil
}
