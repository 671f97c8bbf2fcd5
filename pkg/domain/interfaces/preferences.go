package interfaces

import (
	"context"

	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

// PreferencesRepository defines the interface for Preferences data access
type PreferencesRepository interface {
	// Get retrieves the preferences for a user. Returns ErrNotFound when
	// no row exists; it never creates one.
	Get(ctx context.Context, userID types.UserID) (*model.Preferences, error)

	// Upsert inserts or updates the preferences row keyed by UserID and
	// returns the stored state. CreatedAt is preserved on update.
	Upsert(ctx context.Context, p *model.Preferences) (*model.Preferences, error)

	// ListAutoCheckEnabled returns the preferences of every user with the
	// auto-check master switch on.
	ListAutoCheckEnabled(ctx context.Context) ([]*model.Preferences, error)
}
