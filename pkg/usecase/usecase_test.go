package usecase_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

// stubProvider serves canned slots per (country, city) pair and can be
// told to fail specific pairs.
type stubProvider struct {
	mu    sync.Mutex
	slots map[string][]model.Slot
	fail  map[string]error
	calls int
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		slots: map[string][]model.Slot{},
		fail:  map[string]error{},
	}
}

func pairKey(country, city string) string {
	return country + "|" + city
}

func (s *stubProvider) addSlot(slot model.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(slot.Country, slot.City)
	s.slots[key] = append(s.slots[key], slot)
}

func (s *stubProvider) failPair(country, city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[pairKey(country, city)] = goerr.New("provider unavailable")
}

func (s *stubProvider) FetchSlots(ctx context.Context, country, city string) ([]model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if err := s.fail[pairKey(country, city)]; err != nil {
		return nil, err
	}
	return s.slots[pairKey(country, city)], nil
}

// stubChannel records deliveries and can fail the first N sends.
type stubChannel struct {
	kind types.Channel

	mu       sync.Mutex
	sent     []string
	failNext int
}

var _ interfaces.NotificationChannel = &stubChannel{}

func newStubChannel(kind types.Channel) *stubChannel {
	return &stubChannel{kind: kind}
}

func (s *stubChannel) Kind() types.Channel {
	return s.kind
}

func (s *stubChannel) Send(ctx context.Context, destination, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failNext > 0 {
		s.failNext--
		return goerr.New("send rejected")
	}
	s.sent = append(s.sent, message)
	return nil
}

func (s *stubChannel) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func watchPrefs(userID types.UserID) *model.Preferences {
	return &model.Preferences{
		UserID:            userID,
		Countries:         []string{"DE"},
		Cities:            []string{"IST"},
		CheckFrequencyMin: model.MinCheckFrequencyMin,
		TelegramEnabled:   true,
		TelegramChatID:    "12345",
		AutoCheckEnabled:  true,
	}
}
