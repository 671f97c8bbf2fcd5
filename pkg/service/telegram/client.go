package telegram

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/types"
	tele "gopkg.in/telebot.v4"
)

// Client delivers notifications through the Telegram Bot API. The
// destination stored in user preferences is the numeric chat ID as a
// decimal string.
type Client struct {
	bot *tele.Bot
}

var _ interfaces.NotificationChannel = &Client{}

// New validates the bot token against the Telegram API and returns a
// send-only client.
func New(token string) (*Client, error) {
	if token == "" {
		return nil, goerr.New("telegram bot token is required")
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Client: &http.Client{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize telegram bot")
	}

	return &Client{bot: bot}, nil
}

func (c *Client) Kind() types.Channel {
	return types.ChannelTelegram
}

// Send posts the message to the chat identified by destination.
func (c *Client) Send(ctx context.Context, destination, message string) error {
	chatID, err := strconv.ParseInt(destination, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "telegram destination is not a chat ID",
			goerr.V("destination", destination))
	}

	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "telegram send cancelled")
	}

	if _, err := c.bot.Send(tele.ChatID(chatID), message); err != nil {
		return goerr.Wrap(err, "failed to send telegram message",
			goerr.V("chat_id", chatID))
	}

	return nil
}
