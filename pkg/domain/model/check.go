package model

import (
	"time"

	"github.com/secmon-lab/argus/pkg/domain/types"
)

// CheckRecord is one row in the append-only check history: one per
// orchestrator pass per eligible user, written even when no slot was found
// or some pairs errored. The latest record enforces the per-user cadence.
type CheckRecord struct {
	ID           types.CheckID
	UserID       types.UserID
	PairsChecked int
	SlotsFound   int
	CheckedAt    time.Time
}
