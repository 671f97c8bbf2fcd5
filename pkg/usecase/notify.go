package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/utils/logging"
)

// Notify runs one delivery campaign for an appointment. For every channel
// the user has enabled and configured it consults the notification history
// first, so an appointment is delivered at most once per channel no matter
// how many passes see it. Every attempt is recorded; the ledger row is
// marked notified only when at least one channel succeeded.
func (uc *UseCases) Notify(ctx context.Context, appt *model.Appointment, prefs *model.Preferences) (bool, error) {
	logger := logging.From(ctx)

	anySuccess := false
	for _, ch := range types.AllChannels() {
		dest, enabled := prefs.ChannelDestination(ch)
		if !enabled {
			continue
		}

		channel, ok := uc.channels[ch]
		if !ok {
			logger.Warn("channel enabled in preferences but not configured",
				"channel", ch, "user_id", appt.UserID)
			continue
		}

		delivered, err := uc.alreadyDelivered(ctx, appt.ID, ch)
		if err != nil {
			return anySuccess, err
		}
		if delivered {
			anySuccess = true
			continue
		}

		if uc.deliver(ctx, channel, dest, appt) {
			anySuccess = true
		}
	}

	if anySuccess && !appt.Notified {
		if err := uc.repo.Appointment().MarkNotified(ctx, appt.ID); err != nil {
			return anySuccess, goerr.Wrap(err, "failed to mark appointment notified",
				goerr.V("appointment_id", appt.ID))
		}
	}

	return anySuccess, nil
}

// alreadyDelivered reports whether the history holds a successful delivery
// for this (appointment, channel) pair.
func (uc *UseCases) alreadyDelivered(ctx context.Context, apptID types.AppointmentID, ch types.Channel) (bool, error) {
	records, err := uc.repo.Notification().ListByAppointment(ctx, apptID)
	if err != nil {
		return false, goerr.Wrap(err, "failed to load delivery history",
			goerr.V("appointment_id", apptID))
	}

	for _, rec := range records {
		if rec.Channel == ch && rec.Outcome == types.DeliverySent {
			return true, nil
		}
	}
	return false, nil
}

// deliver sends the slot message with one immediate retry, appending one
// history record per attempt. It returns whether any attempt succeeded.
func (uc *UseCases) deliver(ctx context.Context, channel interfaces.NotificationChannel, dest string, appt *model.Appointment) bool {
	logger := logging.From(ctx)
	message := slotMessage(appt)

	for attempt := 0; attempt < 2; attempt++ {
		err := channel.Send(ctx, dest, message)

		rec := &model.DeliveryRecord{
			UserID:        appt.UserID,
			AppointmentID: appt.ID,
			Channel:       channel.Kind(),
			Outcome:       types.DeliverySent,
		}
		if err != nil {
			rec.Outcome = types.DeliveryFailed
			rec.Detail = err.Error()
		}

		if _, recErr := uc.repo.Notification().Create(ctx, rec); recErr != nil {
			logger.Error("failed to record delivery attempt",
				"appointment_id", appt.ID, "channel", channel.Kind(), "error", recErr)
		}

		if err == nil {
			return true
		}

		logger.Warn("delivery attempt failed",
			"appointment_id", appt.ID, "channel", channel.Kind(),
			"attempt", attempt+1, "error", err)
	}

	return false
}

// TestDelivery sends one message with credentials supplied by the caller.
// Nothing is persisted: no ledger row, no history record.
func (uc *UseCases) TestDelivery(ctx context.Context, ch types.Channel, token, destination string) error {
	if uc.factory == nil {
		return goerr.Wrap(ErrChannelNotUsable, "no channel factory configured")
	}
	if !ch.IsValid() {
		return goerr.Wrap(ErrChannelNotUsable, "unknown channel", goerr.V("channel", ch))
	}

	channel, err := uc.factory(ch, token)
	if err != nil {
		return goerr.Wrap(err, "failed to build channel for test delivery", goerr.V("channel", ch))
	}

	if err := channel.Send(ctx, destination, "Test notification: your channel is configured correctly."); err != nil {
		return goerr.Wrap(err, "test delivery failed", goerr.V("channel", ch))
	}

	return nil
}

func slotMessage(appt *model.Appointment) string {
	return fmt.Sprintf("Appointment slot available: %s / %s on %s", appt.Country, appt.City, appt.Date)
}
