package interfaces

import (
	"context"

	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

// ProfileRepository defines the interface for Profile data access
type ProfileRepository interface {
	// Create inserts a new profile. It fails when a profile with the same
	// ID already exists.
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)

	// Get retrieves a profile by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id types.UserID) (*model.Profile, error)
}
