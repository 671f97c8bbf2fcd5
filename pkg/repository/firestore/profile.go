package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) collection() string {
	return CollectionName(r.collectionPrefix, "user_profiles")
}

func (r *profileRepository) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	created := *p
	created.Status = created.Status.Normalize()
	created.CreatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	// Create (not Set) keeps the one-profile-per-ID invariant: a
	// concurrent duplicate write loses with AlreadyExists.
	if _, err := docRef.Create(ctx, &created); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(interfaces.ErrDuplicate, "profile already exists", goerr.V("id", p.ID))
		}
		return nil, goerr.Wrap(err, "failed to create profile", goerr.V("id", p.ID))
	}

	return &created, nil
}

func (r *profileRepository) Get(ctx context.Context, id types.UserID) (*model.Profile, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "profile not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}

	var p model.Profile
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode profile", goerr.V("id", id))
	}
	p.Status = p.Status.Normalize()

	return &p, nil
}
