package interfaces

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by all repository backends. Callers match with
// errors.Is so the orchestrator and boundary behave identically against
// firestore and memory.
var (
	// ErrNotFound is returned when a requested record does not exist.
	// Absent preferences is a normal, reportable condition, not a failure.
	ErrNotFound = goerr.New("record not found")

	// ErrDuplicate is returned when an insert collides with an existing
	// record. The ledger relies on it to reject re-observed slots.
	ErrDuplicate = goerr.New("record already exists")
)
