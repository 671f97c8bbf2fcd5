package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/utils/logging"
)

// GetPreferences returns the stored preferences for a user. It never
// creates a row: an unknown user gets ErrPreferencesNotFound.
func (uc *UseCases) GetPreferences(ctx context.Context, userID types.UserID) (*model.Preferences, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidUserID, "invalid user ID", goerr.V("user_id", userID))
	}

	prefs, err := uc.repo.Preferences().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrPreferencesNotFound, "no preferences for user",
				goerr.V("user_id", userID))
		}
		return nil, goerr.Wrap(err, "failed to load preferences")
	}

	return prefs, nil
}

// UpsertPreferences stores a user's watch configuration and returns the
// stored row. A missing profile is provisioned lazily with a placeholder
// email; since the preferences write is the operation of record, a failed
// profile write is logged and swallowed.
func (uc *UseCases) UpsertPreferences(ctx context.Context, input *model.Preferences) (*model.Preferences, error) {
	if err := input.UserID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidUserID, "invalid user ID", goerr.V("user_id", input.UserID))
	}

	if err := uc.validateWatchTargets(input); err != nil {
		return nil, err
	}

	uc.ensureProfile(ctx, input.UserID)

	input.Normalize()

	stored, err := uc.repo.Preferences().Upsert(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store preferences", goerr.V("user_id", input.UserID))
	}

	return stored, nil
}

func (uc *UseCases) validateWatchTargets(input *model.Preferences) error {
	if uc.catalog == nil {
		return nil
	}

	for _, country := range input.Countries {
		if !uc.catalog.HasCountry(country) {
			return goerr.Wrap(ErrUnknownWatchCode, "country is not in the catalog",
				goerr.V("country", country))
		}
	}
	for _, city := range input.Cities {
		if !uc.catalog.HasCity(city) {
			return goerr.Wrap(ErrUnknownWatchCode, "city is not in the catalog",
				goerr.V("city", city))
		}
	}

	return nil
}

// ensureProfile creates a provisional profile when none exists. Concurrent
// first writes can race; the losing create is a duplicate and is ignored.
func (uc *UseCases) ensureProfile(ctx context.Context, userID types.UserID) {
	if _, err := uc.repo.Profile().Get(ctx, userID); err == nil {
		return
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		logging.From(ctx).Warn("profile lookup failed, skipping provisioning",
			"user_id", userID, "error", err)
		return
	}

	if _, err := uc.repo.Profile().Create(ctx, model.NewProvisionalProfile(userID)); err != nil {
		if !errors.Is(err, interfaces.ErrDuplicate) {
			logging.From(ctx).Warn("failed to provision profile",
				"user_id", userID, "error", err)
		}
	}
}
