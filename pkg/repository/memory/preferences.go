package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

type preferencesRepository struct {
	mu          sync.RWMutex
	preferences map[types.UserID]*model.Preferences
}

func newPreferencesRepository() *preferencesRepository {
	return &preferencesRepository{
		preferences: make(map[types.UserID]*model.Preferences),
	}
}

func copyPreferences(p *model.Preferences) *model.Preferences {
	copied := *p
	copied.Countries = make([]string, len(p.Countries))
	copy(copied.Countries, p.Countries)
	copied.Cities = make([]string, len(p.Cities))
	copy(copied.Cities, p.Cities)
	return &copied
}

func (r *preferencesRepository) Get(ctx context.Context, userID types.UserID) (*model.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.preferences[userID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "preferences not found", goerr.V("user_id", userID))
	}

	return copyPreferences(p), nil
}

func (r *preferencesRepository) Upsert(ctx context.Context, p *model.Preferences) (*model.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := copyPreferences(p)
	stored.UpdatedAt = now

	if existing, exists := r.preferences[p.UserID]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}

	r.preferences[stored.UserID] = stored
	return copyPreferences(stored), nil
}

func (r *preferencesRepository) ListAutoCheckEnabled(ctx context.Context) ([]*model.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Preferences
	for _, p := range r.preferences {
		if p.AutoCheckEnabled {
			result = append(result, copyPreferences(p))
		}
	}

	return result, nil
}
