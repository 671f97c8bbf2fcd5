package model

import (
	"fmt"
	"time"

	"github.com/secmon-lab/argus/pkg/domain/types"
)

// Profile is the identity anchor for a user. The ID is client-generated;
// a profile is created lazily on the first preference write when absent
// and is never deleted by the monitoring core.
type Profile struct {
	ID        types.UserID
	Email     string
	Status    types.ProfileStatus
	CreatedAt time.Time
}

// NewProvisionalProfile builds a profile for an anonymous user with a
// clearly synthetic placeholder email. The profile stays provisional until
// the user registers a real address.
func NewProvisionalProfile(id types.UserID) *Profile {
	return &Profile{
		ID:     id,
		Email:  fmt.Sprintf("user-%s@temp.local", id),
		Status: types.ProfileProvisional,
	}
}
