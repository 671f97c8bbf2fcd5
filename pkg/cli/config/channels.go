package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/service/slack"
	"github.com/secmon-lab/argus/pkg/service/telegram"
	"github.com/secmon-lab/argus/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Channels holds CLI flags for the notification channel credentials. A
// channel without a token is simply not wired; users who enabled it in
// their preferences are skipped on that channel.
type Channels struct {
	telegramToken string
	slackToken    string
}

// Flags returns CLI flags for channel configuration
func (x *Channels) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "telegram-bot-token",
			Usage:       "Telegram Bot API token",
			Category:    "Channels",
			Sources:     cli.EnvVars("ARGUS_TELEGRAM_BOT_TOKEN"),
			Destination: &x.telegramToken,
		},
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token",
			Category:    "Channels",
			Sources:     cli.EnvVars("ARGUS_SLACK_BOT_TOKEN"),
			Destination: &x.slackToken,
		},
	}
}

func (x Channels) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("telegram", x.telegramToken != ""),
		slog.Bool("slack", x.slackToken != ""),
	)
}

// Configure builds the channel clients for every configured token.
func (x *Channels) Configure() ([]interfaces.NotificationChannel, error) {
	var channels []interfaces.NotificationChannel

	if x.telegramToken != "" {
		ch, err := telegram.New(x.telegramToken)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize telegram channel")
		}
		channels = append(channels, ch)
	}

	if x.slackToken != "" {
		ch, err := slack.New(x.slackToken)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize slack channel")
		}
		channels = append(channels, ch)
	}

	return channels, nil
}

// Factory returns the channel factory used for ad-hoc test deliveries,
// where the token comes from the request instead of these flags.
func (x *Channels) Factory() usecase.ChannelFactory {
	return func(ch types.Channel, token string) (interfaces.NotificationChannel, error) {
		switch ch {
		case types.ChannelTelegram:
			return telegram.New(token)
		case types.ChannelSlack:
			return slack.New(token)
		default:
			return nil, goerr.New("unsupported channel", goerr.V("channel", ch))
		}
	}
}
