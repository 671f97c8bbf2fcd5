package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/argus/pkg/controller/http"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/repository/memory"
	"github.com/secmon-lab/argus/pkg/usecase"
)

type recordChannel struct {
	kind types.Channel
	sent int
	fail bool
}

func (c *recordChannel) Kind() types.Channel {
	return c.kind
}

func (c *recordChannel) Send(ctx context.Context, destination, message string) error {
	if c.fail {
		return context.DeadlineExceeded
	}
	c.sent++
	return nil
}

type fixedProvider struct {
	slots []model.Slot
}

func (p *fixedProvider) FetchSlots(ctx context.Context, country, city string) ([]model.Slot, error) {
	return p.slots, nil
}

func postJSON(t *testing.T, srv *server.Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	gt.NoError(t, err).Required()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestPreferencesEndpoints(t *testing.T) {
	repo := memory.New()
	srv := server.New(usecase.New(repo))

	t.Run("GET without userId is a bad request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/preferences", nil))
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("GET for an unknown user is not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
			"/api/preferences?userId="+types.NewUserID().String(), nil))
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("POST with a malformed userId is rejected before any write", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/preferences", map[string]any{
			"userId":    "not-a-uuid",
			"countries": []string{"DE"},
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

		_, err := repo.Profile().Get(context.Background(), types.UserID("not-a-uuid"))
		gt.Error(t, err)
	})

	t.Run("POST stores and GET returns the record", func(t *testing.T) {
		userID := types.NewUserID()
		rec := postJSON(t, srv, "/api/preferences", map[string]any{
			"userId":         userID.String(),
			"countries":      []string{"DE"},
			"cities":         []string{"IST"},
			"checkFrequency": 120,
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var stored struct {
			CheckFrequencyMin int `json:"checkFrequency"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored)).Required()
		gt.Value(t, stored.CheckFrequencyMin).Equal(model.MaxCheckFrequencyMin)

		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
			"/api/preferences?userId="+userID.String(), nil))
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.True(t, strings.Contains(rec.Body.String(), userID.String()))
	})

	t.Run("POST with a partial body keeps omitted fields", func(t *testing.T) {
		userID := types.NewUserID()
		rec := postJSON(t, srv, "/api/preferences", map[string]any{
			"userId":          userID.String(),
			"countries":       []string{"DE"},
			"cities":          []string{"IST"},
			"checkFrequency":  30,
			"telegramEnabled": true,
			"telegramChatId":  "12345",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = postJSON(t, srv, "/api/preferences", map[string]any{
			"userId":           userID.String(),
			"autoCheckEnabled": true,
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var stored struct {
			Countries         []string `json:"countries"`
			CheckFrequencyMin int      `json:"checkFrequency"`
			TelegramEnabled   bool     `json:"telegramEnabled"`
			TelegramChatID    string   `json:"telegramChatId"`
			AutoCheckEnabled  bool     `json:"autoCheckEnabled"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored)).Required()
		gt.Value(t, stored.Countries).Equal([]string{"DE"})
		gt.Value(t, stored.CheckFrequencyMin).Equal(30)
		gt.True(t, stored.TelegramEnabled)
		gt.Value(t, stored.TelegramChatID).Equal("12345")
		gt.True(t, stored.AutoCheckEnabled)
	})
}

func TestTestDeliveryEndpoint(t *testing.T) {
	newServer := func(ch *recordChannel) *server.Server {
		uc := usecase.New(memory.New(), usecase.WithChannelFactory(
			func(kind types.Channel, token string) (interfaces.NotificationChannel, error) {
				return ch, nil
			},
		))
		return server.New(uc)
	}

	t.Run("delivers and reports success", func(t *testing.T) {
		ch := &recordChannel{kind: types.ChannelTelegram}
		rec := postJSON(t, newServer(ch), "/api/notify/test", map[string]any{
			"channel":     "telegram",
			"token":       "tok",
			"destination": "12345",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, ch.sent).Equal(1)
	})

	t.Run("delivery failure maps to bad gateway", func(t *testing.T) {
		ch := &recordChannel{kind: types.ChannelTelegram, fail: true}
		rec := postJSON(t, newServer(ch), "/api/notify/test", map[string]any{
			"channel":     "telegram",
			"token":       "tok",
			"destination": "12345",
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadGateway)
	})

	t.Run("unknown channel is a bad request", func(t *testing.T) {
		ch := &recordChannel{kind: types.ChannelTelegram}
		rec := postJSON(t, newServer(ch), "/api/notify/test", map[string]any{
			"channel": "carrier-pigeon",
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestTriggerEndpoint(t *testing.T) {
	newServer := func(secret string) (*server.Server, interfaces.Repository) {
		repo := memory.New()
		uc := usecase.New(repo,
			usecase.WithProvider(&fixedProvider{}),
		)
		return server.New(uc, server.WithTriggerSecret(secret)), repo
	}

	t.Run("missing token is unauthorized", func(t *testing.T) {
		srv, _ := newServer("s3cret")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cron/check", nil))
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("wrong token is unauthorized", func(t *testing.T) {
		srv, _ := newServer("s3cret")
		req := httptest.NewRequest(http.MethodGet, "/api/cron/check", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("valid token runs a pass and reports the summary", func(t *testing.T) {
		srv, repo := newServer("s3cret")

		userID := types.NewUserID()
		_, err := repo.Preferences().Upsert(context.Background(), &model.Preferences{
			UserID:           userID,
			Countries:        []string{"DE"},
			Cities:           []string{"IST"},
			AutoCheckEnabled: true,
		})
		gt.NoError(t, err).Required()

		req := httptest.NewRequest(http.MethodGet, "/api/cron/check", nil)
		req.Header.Set("Authorization", "Bearer s3cret")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var summary struct {
			Checked int `json:"checked"`
			Results []struct {
				UserID string `json:"userId"`
				Found  int    `json:"found"`
			} `json:"results"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary)).Required()
		gt.Value(t, summary.Checked).Equal(1)
		gt.Array(t, summary.Results).Length(1)
		gt.Value(t, summary.Results[0].UserID).Equal(userID.String())
	})

	t.Run("endpoint is absent without a configured secret", func(t *testing.T) {
		srv, _ := newServer("")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cron/check", nil))
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestHealth(t *testing.T) {
	srv := server.New(usecase.New(memory.New()))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}
