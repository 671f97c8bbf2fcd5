package model

import (
	"time"

	"github.com/secmon-lab/argus/pkg/domain/types"
)

const (
	// MinCheckFrequencyMin and MaxCheckFrequencyMin bound the per-user
	// check cadence in minutes. Values outside the range are clamped on
	// upsert, never stored as-is.
	MinCheckFrequencyMin = 5
	MaxCheckFrequencyMin = 60

	// DefaultCheckFrequencyMin is applied when a preference write omits
	// the frequency entirely.
	DefaultCheckFrequencyMin = 30
)

// Preferences holds one user's watch configuration. One-to-one with
// Profile via UserID.
type Preferences struct {
	UserID            types.UserID
	Countries         []string
	Cities            []string
	CheckFrequencyMin int
	TelegramEnabled   bool
	TelegramChatID    string
	SlackEnabled      bool
	SlackChannelID    string
	InAppEnabled      bool
	SoundEnabled      bool
	AutoCheckEnabled  bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WatchPair is one (country, city) combination to query against the
// availability provider.
type WatchPair struct {
	Country string
	City    string
}

// WatchPairs expands the watched countries and cities into their cartesian
// product. A flat sequence keeps per-pair error isolation and concurrency
// fan-out uniform regardless of list sizes.
func (p *Preferences) WatchPairs() []WatchPair {
	pairs := make([]WatchPair, 0, len(p.Countries)*len(p.Cities))
	for _, country := range p.Countries {
		for _, city := range p.Cities {
			pairs = append(pairs, WatchPair{Country: country, City: city})
		}
	}
	return pairs
}

// Normalize clamps the check frequency into the accepted range and fills
// the default when unset.
func (p *Preferences) Normalize() {
	switch {
	case p.CheckFrequencyMin == 0:
		p.CheckFrequencyMin = DefaultCheckFrequencyMin
	case p.CheckFrequencyMin < MinCheckFrequencyMin:
		p.CheckFrequencyMin = MinCheckFrequencyMin
	case p.CheckFrequencyMin > MaxCheckFrequencyMin:
		p.CheckFrequencyMin = MaxCheckFrequencyMin
	}
}

// ChannelDestination returns the stored destination for a channel and
// whether that channel is enabled and configured.
func (p *Preferences) ChannelDestination(ch types.Channel) (string, bool) {
	switch ch {
	case types.ChannelTelegram:
		return p.TelegramChatID, p.TelegramEnabled && p.TelegramChatID != ""
	case types.ChannelSlack:
		return p.SlackChannelID, p.SlackEnabled && p.SlackChannelID != ""
	default:
		return "", false
	}
}
