package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// CheckSummary reports one orchestrator pass.
type CheckSummary struct {
	// Checked is the number of eligible users actually processed.
	Checked int              `json:"checked"`
	Results []UserCheckResult `json:"results"`
}

// UserCheckResult is the per-user outcome of a pass.
type UserCheckResult struct {
	UserID types.UserID `json:"userId"`
	Found  int          `json:"found"`
}

// RunCheck runs one monitoring pass: select eligible users by their own
// cadence, query the provider for every watched pair, reconcile results
// against the ledger and hand new appointments to the notifier. Users are
// processed concurrently up to the configured limit; per-user and per-pair
// failures are isolated so one bad user or provider hiccup never aborts
// the pass. Overlapping passes are tolerated: the cadence filter and the
// ledger's uniqueness key make double processing harmless.
func (uc *UseCases) RunCheck(ctx context.Context) (*CheckSummary, error) {
	if uc.provider == nil {
		return nil, goerr.Wrap(ErrProviderNotWired, "cannot run check")
	}

	logger := logging.From(ctx)

	allPrefs, err := uc.repo.Preferences().ListAutoCheckEnabled(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list auto-check users")
	}

	now := uc.now().UTC()

	summary := &CheckSummary{Results: []UserCheckResult{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for _, prefs := range allPrefs {
		eligible, err := uc.isEligible(ctx, prefs, now)
		if err != nil {
			logger.Warn("eligibility lookup failed, skipping user",
				"user_id", prefs.UserID, "error", err)
			continue
		}
		if !eligible {
			continue
		}

		g.Go(func() error {
			found := uc.checkUser(gctx, prefs, now)

			mu.Lock()
			summary.Checked++
			summary.Results = append(summary.Results, UserCheckResult{
				UserID: prefs.UserID,
				Found:  found,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, goerr.Wrap(err, "check pass aborted")
	}

	logger.Info("check pass finished", "checked", summary.Checked)
	return summary, nil
}

// isEligible applies the per-user cadence: a user whose latest check is
// newer than now minus their check frequency is skipped entirely and gets
// no check record for this pass.
func (uc *UseCases) isEligible(ctx context.Context, prefs *model.Preferences, now time.Time) (bool, error) {
	latest, err := uc.repo.Check().Latest(ctx, prefs.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return true, nil
		}
		return false, err
	}

	interval := time.Duration(prefs.CheckFrequencyMin) * time.Minute
	return !latest.CheckedAt.After(now.Add(-interval)), nil
}

// checkUser processes one eligible user and returns the number of newly
// discovered slots. It always writes exactly one check record, even when
// every pair errored or nothing was found.
func (uc *UseCases) checkUser(ctx context.Context, prefs *model.Preferences, now time.Time) int {
	logger := logging.From(ctx)

	// Unfinished campaigns from earlier passes go first: an appointment
	// left unnotified by an all-channels failure is retried here.
	uc.redeliverPending(ctx, prefs)

	pairs := prefs.WatchPairs()
	found := 0

	for _, pair := range pairs {
		slots, err := uc.provider.FetchSlots(ctx, pair.Country, pair.City)
		if err != nil {
			logger.Warn("provider query failed",
				"user_id", prefs.UserID, "country", pair.Country, "city", pair.City,
				"error", err)
			continue
		}

		for _, slot := range slots {
			if uc.recordAndNotify(ctx, prefs, slot) {
				found++
			}
		}
	}

	if _, err := uc.repo.Check().Create(ctx, &model.CheckRecord{
		UserID:       prefs.UserID,
		PairsChecked: len(pairs),
		SlotsFound:   found,
		CheckedAt:    now,
	}); err != nil {
		logger.Error("failed to record check", "user_id", prefs.UserID, "error", err)
	}

	return found
}

// recordAndNotify inserts one observed slot into the ledger and, when it
// is genuinely new, starts its delivery campaign. A duplicate slot key
// means the slot was seen on an earlier pass and must not notify again.
func (uc *UseCases) recordAndNotify(ctx context.Context, prefs *model.Preferences, slot model.Slot) bool {
	logger := logging.From(ctx)

	appt, err := uc.repo.Appointment().Create(ctx, model.NewAppointment(prefs.UserID, slot))
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return false
		}
		logger.Error("failed to record appointment",
			"user_id", prefs.UserID, "country", slot.Country, "city", slot.City,
			"date", slot.Date, "error", err)
		return false
	}

	if _, err := uc.Notify(ctx, appt, prefs); err != nil {
		logger.Error("notification campaign failed",
			"appointment_id", appt.ID, "error", err)
	}

	return true
}

func (uc *UseCases) redeliverPending(ctx context.Context, prefs *model.Preferences) {
	logger := logging.From(ctx)

	pending, err := uc.repo.Appointment().ListUnnotified(ctx, prefs.UserID)
	if err != nil {
		logger.Warn("failed to list unnotified appointments",
			"user_id", prefs.UserID, "error", err)
		return
	}

	for _, appt := range pending {
		if _, err := uc.Notify(ctx, appt, prefs); err != nil {
			logger.Error("redelivery failed", "appointment_id", appt.ID, "error", err)
		}
	}
}
