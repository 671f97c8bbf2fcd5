package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Client delivers notifications to Slack. The destination stored in user
// preferences is a channel ID (or user ID for DMs).
type Client struct {
	client *slack.Client
}

var _ interfaces.NotificationChannel = &Client{}

func New(token string) (*Client, error) {
	if token == "" {
		return nil, goerr.New("slack bot token is required")
	}
	return &Client{client: slack.New(token)}, nil
}

func (c *Client) Kind() types.Channel {
	return types.ChannelSlack
}

// Send posts the message to the given channel.
func (c *Client) Send(ctx context.Context, destination, message string) error {
	if destination == "" {
		return goerr.New("slack destination is required")
	}

	_, _, err := c.client.PostMessageContext(ctx, destination,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post slack message",
			goerr.V("channel", destination))
	}

	return nil
}
