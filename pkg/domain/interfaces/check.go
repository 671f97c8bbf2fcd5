package interfaces

import (
	"context"

	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

// CheckRepository defines the interface for the append-only check history
type CheckRepository interface {
	// Create appends one check record.
	Create(ctx context.Context, r *model.CheckRecord) (*model.CheckRecord, error)

	// Latest returns the most recent check record for a user. Returns
	// ErrNotFound when the user has never been checked.
	Latest(ctx context.Context, userID types.UserID) (*model.CheckRecord, error)

	// ListByUser returns the user's check records, newest first.
	ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.CheckRecord, error)
}
