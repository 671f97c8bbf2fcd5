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
)

type checkRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCheckRepository(client *firestore.Client) *checkRepository {
	return &checkRepository{client: client}
}

func (r *checkRepository) collection() string {
	return CollectionName(r.collectionPrefix, "check_history")
}

func (r *checkRepository) Create(ctx context.Context, rec *model.CheckRecord) (*model.CheckRecord, error) {
	created := *rec
	if created.ID == "" {
		created.ID = types.NewCheckID()
	}
	if created.CheckedAt.IsZero() {
		created.CheckedAt = time.Now().UTC()
	}

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Create(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create check record", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *checkRepository) Latest(ctx context.Context, userID types.UserID) (*model.CheckRecord, error) {
	iter := r.client.Collection(r.collection()).
		Where("UserID", "==", userID.String()).
		OrderBy("CheckedAt", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "no check record", goerr.V("user_id", userID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query latest check record", goerr.V("user_id", userID))
	}

	var rec model.CheckRecord
	if err := docSnap.DataTo(&rec); err != nil {
		return nil, goerr.Wrap(err, "failed to decode check record", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return &rec, nil
}

func (r *checkRepository) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.CheckRecord, error) {
	q := r.client.Collection(r.collection()).
		Where("UserID", "==", userID.String()).
		OrderBy("CheckedAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var result []*model.CheckRecord
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate check records", goerr.V("user_id", userID))
		}

		var rec model.CheckRecord
		if err := docSnap.DataTo(&rec); err != nil {
			return nil, goerr.Wrap(err, "failed to decode check record", goerr.V("doc_id", docSnap.Ref.ID))
		}

		result = append(result, &rec)
	}

	return result, nil
}
