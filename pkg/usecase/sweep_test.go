package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/repository/memory"
	"github.com/secmon-lab/argus/pkg/usecase"
)

func TestSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("removes rows older than the retention age", func(t *testing.T) {
		repo := memory.New()
		clock := &testClock{now: time.Now().UTC().Add(40 * 24 * time.Hour)}
		uc := usecase.New(repo, usecase.WithClock(clock.Now))

		userID := types.NewUserID()
		createAppointment(t, repo, userID)

		deleted, err := uc.Sweep(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, deleted).Equal(1)

		pending, err := repo.Appointment().ListUnnotified(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, pending).Length(0)
	})

	t.Run("keeps rows inside the retention window", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithRetention(48*time.Hour))

		userID := types.NewUserID()
		createAppointment(t, repo, userID)

		deleted, err := uc.Sweep(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, deleted).Equal(0)

		pending, err := repo.Appointment().ListUnnotified(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, pending).Length(1)
	})
}
