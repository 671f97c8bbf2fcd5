package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

func TestNotificationRepository(t *testing.T) {
	runWithBackends(t, runNotificationRepositoryTest)
}

func runNotificationRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create appends records with IDs and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Notification().Create(ctx, &model.DeliveryRecord{
			UserID:        types.NewUserID(),
			AppointmentID: types.NewAppointmentID(),
			Channel:       types.ChannelTelegram,
			Outcome:       types.DeliverySent,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID.String()).NotEqual("")
		gt.False(t, created.SentAt.IsZero())
	})

	t.Run("ListByAppointment returns only that appointment's attempts", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.NewUserID()
		target := types.NewAppointmentID()
		other := types.NewAppointmentID()

		for _, rec := range []*model.DeliveryRecord{
			{UserID: userID, AppointmentID: target, Channel: types.ChannelTelegram, Outcome: types.DeliveryFailed, Detail: "timeout"},
			{UserID: userID, AppointmentID: target, Channel: types.ChannelTelegram, Outcome: types.DeliverySent},
			{UserID: userID, AppointmentID: other, Channel: types.ChannelSlack, Outcome: types.DeliverySent},
		} {
			_, err := repo.Notification().Create(ctx, rec)
			gt.NoError(t, err).Required()
		}

		list, err := repo.Notification().ListByAppointment(ctx, target)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)
		for _, rec := range list {
			gt.Value(t, rec.AppointmentID).Equal(target)
		}
	})

	t.Run("ListByUser honors the limit and newest-first order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.NewUserID()
		for range 3 {
			_, err := repo.Notification().Create(ctx, &model.DeliveryRecord{
				UserID:        userID,
				AppointmentID: types.NewAppointmentID(),
				Channel:       types.ChannelTelegram,
				Outcome:       types.DeliverySent,
			})
			gt.NoError(t, err).Required()
		}

		list, err := repo.Notification().ListByUser(ctx, userID, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)
		gt.False(t, list[0].SentAt.Before(list[1].SentAt))
	})
}
