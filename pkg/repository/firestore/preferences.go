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

type preferencesRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPreferencesRepository(client *firestore.Client) *preferencesRepository {
	return &preferencesRepository{client: client}
}

func (r *preferencesRepository) collection() string {
	return CollectionName(r.collectionPrefix, "user_preferences")
}

func (r *preferencesRepository) Get(ctx context.Context, userID types.UserID) (*model.Preferences, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(userID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "preferences not found", goerr.V("user_id", userID))
		}
		return nil, goerr.Wrap(err, "failed to get preferences", goerr.V("user_id", userID))
	}

	var p model.Preferences
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode preferences", goerr.V("user_id", userID))
	}

	return &p, nil
}

func (r *preferencesRepository) Upsert(ctx context.Context, p *model.Preferences) (*model.Preferences, error) {
	docRef := r.client.Collection(r.collection()).Doc(p.UserID.String())

	now := time.Now().UTC()
	stored := *p
	stored.UpdatedAt = now
	stored.CreatedAt = now

	// Preserve CreatedAt of an existing row. The read and write are not
	// transactional; a lost CreatedAt race only skews a diagnostic field.
	if docSnap, err := docRef.Get(ctx); err == nil {
		var existing model.Preferences
		if err := docSnap.DataTo(&existing); err == nil && !existing.CreatedAt.IsZero() {
			stored.CreatedAt = existing.CreatedAt
		}
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to check preferences existence", goerr.V("user_id", p.UserID))
	}

	if _, err := docRef.Set(ctx, &stored); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert preferences", goerr.V("user_id", p.UserID))
	}

	return &stored, nil
}

func (r *preferencesRepository) ListAutoCheckEnabled(ctx context.Context) ([]*model.Preferences, error) {
	iter := r.client.Collection(r.collection()).
		Where("AutoCheckEnabled", "==", true).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.Preferences
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate preferences")
		}

		var p model.Preferences
		if err := docSnap.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode preferences", goerr.V("doc_id", docSnap.Ref.ID))
		}

		result = append(result, &p)
	}

	return result, nil
}
