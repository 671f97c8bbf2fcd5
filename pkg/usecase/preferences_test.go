package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/repository/memory"
	"github.com/secmon-lab/argus/pkg/usecase"
)

func TestGetPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a malformed user ID", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.GetPreferences(ctx, types.UserID("not-a-uuid"))
		gt.True(t, errors.Is(err, usecase.ErrInvalidUserID))
	})

	t.Run("absence is reported, never provisioned", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		userID := types.NewUserID()
		_, err := uc.GetPreferences(ctx, userID)
		gt.True(t, errors.Is(err, usecase.ErrPreferencesNotFound))

		// No profile appears as a side effect either.
		_, err = repo.Profile().Get(ctx, userID)
		gt.Error(t, err)
	})

	t.Run("returns the stored record", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		userID := types.NewUserID()
		_, err := repo.Preferences().Upsert(ctx, watchPrefs(userID))
		gt.NoError(t, err).Required()

		prefs, err := uc.GetPreferences(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, prefs.UserID).Equal(userID)
	})
}

func TestUpsertPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a malformed user ID before any write", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, err := uc.UpsertPreferences(ctx, &model.Preferences{UserID: "not-a-uuid"})
		gt.True(t, errors.Is(err, usecase.ErrInvalidUserID))
	})

	t.Run("provisions a placeholder profile on first write", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		userID := types.NewUserID()
		stored, err := uc.UpsertPreferences(ctx, watchPrefs(userID))
		gt.NoError(t, err).Required()
		gt.Value(t, stored.UserID).Equal(userID)

		profile, err := repo.Profile().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, profile.Status).Equal(types.ProfileProvisional)
		gt.Value(t, profile.Email).Equal("user-" + userID.String() + "@temp.local")
	})

	t.Run("an existing profile is left untouched", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		userID := types.NewUserID()
		_, err := repo.Profile().Create(ctx, &model.Profile{
			ID:     userID,
			Email:  "real@example.com",
			Status: types.ProfileConfirmed,
		})
		gt.NoError(t, err).Required()

		_, err = uc.UpsertPreferences(ctx, watchPrefs(userID))
		gt.NoError(t, err).Required()

		profile, err := repo.Profile().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, profile.Email).Equal("real@example.com")
		gt.Value(t, profile.Status).Equal(types.ProfileConfirmed)
	})

	t.Run("check frequency is clamped into range", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		for input, want := range map[int]int{
			0:   model.DefaultCheckFrequencyMin,
			1:   model.MinCheckFrequencyMin,
			5:   5,
			60:  60,
			120: model.MaxCheckFrequencyMin,
		} {
			prefs := watchPrefs(types.NewUserID())
			prefs.CheckFrequencyMin = input

			stored, err := uc.UpsertPreferences(ctx, prefs)
			gt.NoError(t, err).Required()
			gt.Value(t, stored.CheckFrequencyMin).Equal(want)
		}
	})

	t.Run("catalog rejects unknown codes", func(t *testing.T) {
		catalog := &model.Catalog{
			Countries: []model.CatalogEntry{{Code: "DE", Name: "Germany"}},
			Cities:    []model.CatalogEntry{{Code: "IST", Name: "Istanbul"}},
		}
		uc := usecase.New(memory.New(), usecase.WithCatalog(catalog))

		prefs := watchPrefs(types.NewUserID())
		prefs.Countries = []string{"XX"}
		_, err := uc.UpsertPreferences(ctx, prefs)
		gt.True(t, errors.Is(err, usecase.ErrUnknownWatchCode))

		prefs = watchPrefs(types.NewUserID())
		prefs.Cities = []string{"NOWHERE"}
		_, err = uc.UpsertPreferences(ctx, prefs)
		gt.True(t, errors.Is(err, usecase.ErrUnknownWatchCode))

		_, err = uc.UpsertPreferences(ctx, watchPrefs(types.NewUserID()))
		gt.NoError(t, err)
	})
}
