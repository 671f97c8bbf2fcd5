package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

type checkRepository struct {
	mu      sync.RWMutex
	records map[types.UserID][]*model.CheckRecord
}

func newCheckRepository() *checkRepository {
	return &checkRepository{
		records: make(map[types.UserID][]*model.CheckRecord),
	}
}

func copyCheckRecord(r *model.CheckRecord) *model.CheckRecord {
	copied := *r
	return &copied
}

func (r *checkRepository) Create(ctx context.Context, rec *model.CheckRecord) (*model.CheckRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyCheckRecord(rec)
	if created.ID == "" {
		created.ID = types.NewCheckID()
	}
	if created.CheckedAt.IsZero() {
		created.CheckedAt = time.Now().UTC()
	}

	r.records[created.UserID] = append(r.records[created.UserID], created)
	return copyCheckRecord(created), nil
}

func (r *checkRepository) Latest(ctx context.Context, userID types.UserID) (*model.CheckRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.records[userID]
	if len(recs) == 0 {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "no check record", goerr.V("user_id", userID))
	}

	latest := recs[0]
	for _, rec := range recs[1:] {
		if rec.CheckedAt.After(latest.CheckedAt) {
			latest = rec
		}
	}

	return copyCheckRecord(latest), nil
}

func (r *checkRepository) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.CheckRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.records[userID]
	result := make([]*model.CheckRecord, 0, len(recs))
	for _, rec := range recs {
		result = append(result, copyCheckRecord(rec))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CheckedAt.After(result[j].CheckedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}
