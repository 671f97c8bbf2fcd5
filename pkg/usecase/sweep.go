package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/utils/logging"
)

// Sweep deletes ledger rows older than the retention age, notified or not,
// and returns the number of removed rows. History collections are left
// untouched; they are the audit trail.
func (uc *UseCases) Sweep(ctx context.Context) (int, error) {
	cutoff := uc.now().UTC().Add(-uc.retention)

	deleted, err := uc.repo.Appointment().DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, goerr.Wrap(err, "retention sweep failed", goerr.V("cutoff", cutoff))
	}

	logging.From(ctx).Info("retention sweep finished",
		"cutoff", cutoff, "deleted", deleted)
	return deleted, nil
}
