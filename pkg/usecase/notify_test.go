package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/repository/memory"
	"github.com/secmon-lab/argus/pkg/usecase"
)

func createAppointment(t *testing.T, repo interfaces.Repository, userID types.UserID) *model.Appointment {
	t.Helper()

	appt, err := repo.Appointment().Create(context.Background(), model.NewAppointment(userID, model.Slot{
		Country: "DE", City: "IST", Date: "2025-03-01",
	}))
	gt.NoError(t, err).Required()
	return appt
}

func TestNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("a recorded successful delivery is never repeated", func(t *testing.T) {
		repo := memory.New()
		channel := newStubChannel(types.ChannelTelegram)
		uc := usecase.New(repo, usecase.WithChannel(channel))

		userID := types.NewUserID()
		appt := createAppointment(t, repo, userID)

		_, err := repo.Notification().Create(ctx, &model.DeliveryRecord{
			UserID:        userID,
			AppointmentID: appt.ID,
			Channel:       types.ChannelTelegram,
			Outcome:       types.DeliverySent,
		})
		gt.NoError(t, err).Required()

		notified, err := uc.Notify(ctx, appt, watchPrefs(userID))
		gt.NoError(t, err).Required()
		gt.True(t, notified)
		gt.Value(t, channel.sentCount()).Equal(0)

		// The ledger row catches up with the history.
		stored, err := repo.Appointment().Get(ctx, appt.ID)
		gt.NoError(t, err).Required()
		gt.True(t, stored.Notified)
	})

	t.Run("one failed attempt is retried immediately", func(t *testing.T) {
		repo := memory.New()
		channel := newStubChannel(types.ChannelTelegram)
		channel.failNext = 1
		uc := usecase.New(repo, usecase.WithChannel(channel))

		userID := types.NewUserID()
		appt := createAppointment(t, repo, userID)

		notified, err := uc.Notify(ctx, appt, watchPrefs(userID))
		gt.NoError(t, err).Required()
		gt.True(t, notified)
		gt.Value(t, channel.sentCount()).Equal(1)

		records, err := repo.Notification().ListByAppointment(ctx, appt.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2)

		outcomes := map[types.DeliveryOutcome]int{}
		for _, rec := range records {
			outcomes[rec.Outcome]++
		}
		gt.Value(t, outcomes[types.DeliveryFailed]).Equal(1)
		gt.Value(t, outcomes[types.DeliverySent]).Equal(1)
	})

	t.Run("never marked notified when every attempt fails", func(t *testing.T) {
		repo := memory.New()
		channel := newStubChannel(types.ChannelTelegram)
		channel.failNext = 2
		uc := usecase.New(repo, usecase.WithChannel(channel))

		userID := types.NewUserID()
		appt := createAppointment(t, repo, userID)

		notified, err := uc.Notify(ctx, appt, watchPrefs(userID))
		gt.NoError(t, err).Required()
		gt.False(t, notified)

		stored, err := repo.Appointment().Get(ctx, appt.ID)
		gt.NoError(t, err).Required()
		gt.False(t, stored.Notified)

		records, err := repo.Notification().ListByAppointment(ctx, appt.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2)
		for _, rec := range records {
			gt.Value(t, rec.Outcome).Equal(types.DeliveryFailed)
			gt.Value(t, rec.Detail).NotEqual("")
		}
	})

	t.Run("an enabled but unregistered channel is skipped", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo) // no channels wired

		userID := types.NewUserID()
		appt := createAppointment(t, repo, userID)

		notified, err := uc.Notify(ctx, appt, watchPrefs(userID))
		gt.NoError(t, err).Required()
		gt.False(t, notified)
	})

	t.Run("delivers to every enabled channel", func(t *testing.T) {
		repo := memory.New()
		telegram := newStubChannel(types.ChannelTelegram)
		slackCh := newStubChannel(types.ChannelSlack)
		uc := usecase.New(repo,
			usecase.WithChannel(telegram),
			usecase.WithChannel(slackCh),
		)

		userID := types.NewUserID()
		appt := createAppointment(t, repo, userID)

		prefs := watchPrefs(userID)
		prefs.SlackEnabled = true
		prefs.SlackChannelID = "C0123456"

		notified, err := uc.Notify(ctx, appt, prefs)
		gt.NoError(t, err).Required()
		gt.True(t, notified)
		gt.Value(t, telegram.sentCount()).Equal(1)
		gt.Value(t, slackCh.sentCount()).Equal(1)
	})
}

func TestTestDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("builds a channel from the supplied token and persists nothing", func(t *testing.T) {
		repo := memory.New()
		channel := newStubChannel(types.ChannelTelegram)

		var gotToken string
		uc := usecase.New(repo, usecase.WithChannelFactory(
			func(ch types.Channel, token string) (interfaces.NotificationChannel, error) {
				gotToken = token
				return channel, nil
			},
		))

		err := uc.TestDelivery(ctx, types.ChannelTelegram, "test-token", "12345")
		gt.NoError(t, err).Required()
		gt.Value(t, gotToken).Equal("test-token")
		gt.Value(t, channel.sentCount()).Equal(1)

		records, err := repo.Notification().ListByUser(ctx, types.NewUserID(), 10)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(0)
	})

	t.Run("reports the delivery failure", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithChannelFactory(
			func(ch types.Channel, token string) (interfaces.NotificationChannel, error) {
				return nil, goerr.New("bad token")
			},
		))

		err := uc.TestDelivery(ctx, types.ChannelTelegram, "bad", "12345")
		gt.Error(t, err)
	})

	t.Run("rejects an unknown channel", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithChannelFactory(
			func(ch types.Channel, token string) (interfaces.NotificationChannel, error) {
				return newStubChannel(ch), nil
			},
		))

		err := uc.TestDelivery(ctx, types.Channel("carrier-pigeon"), "token", "dest")
		gt.Error(t, err)
	})
}
