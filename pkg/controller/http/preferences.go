package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/usecase"
	"github.com/secmon-lab/argus/pkg/utils/errutil"
)

// preferencesRequest is a partial update: only fields present in the JSON
// body are applied, everything else keeps its stored value. A field the
// client never sent must not silently reset a configured channel.
type preferencesRequest struct {
	UserID            string    `json:"userId"`
	Countries         *[]string `json:"countries"`
	Cities            *[]string `json:"cities"`
	CheckFrequencyMin *int      `json:"checkFrequency"`
	TelegramEnabled   *bool     `json:"telegramEnabled"`
	TelegramChatID    *string   `json:"telegramChatId"`
	SlackEnabled      *bool     `json:"slackEnabled"`
	SlackChannelID    *string   `json:"slackChannelId"`
	InAppEnabled      *bool     `json:"inAppEnabled"`
	SoundEnabled      *bool     `json:"soundEnabled"`
	AutoCheckEnabled  *bool     `json:"autoCheckEnabled"`
}

// apply overlays the fields present in the request onto the base record.
func (req *preferencesRequest) apply(p *model.Preferences) {
	if req.Countries != nil {
		p.Countries = *req.Countries
	}
	if req.Cities != nil {
		p.Cities = *req.Cities
	}
	if req.CheckFrequencyMin != nil {
		p.CheckFrequencyMin = *req.CheckFrequencyMin
	}
	if req.TelegramEnabled != nil {
		p.TelegramEnabled = *req.TelegramEnabled
	}
	if req.TelegramChatID != nil {
		p.TelegramChatID = *req.TelegramChatID
	}
	if req.SlackEnabled != nil {
		p.SlackEnabled = *req.SlackEnabled
	}
	if req.SlackChannelID != nil {
		p.SlackChannelID = *req.SlackChannelID
	}
	if req.InAppEnabled != nil {
		p.InAppEnabled = *req.InAppEnabled
	}
	if req.SoundEnabled != nil {
		p.SoundEnabled = *req.SoundEnabled
	}
	if req.AutoCheckEnabled != nil {
		p.AutoCheckEnabled = *req.AutoCheckEnabled
	}
}

type preferencesResponse struct {
	UserID            string    `json:"userId"`
	Countries         []string  `json:"countries"`
	Cities            []string  `json:"cities"`
	CheckFrequencyMin int       `json:"checkFrequency"`
	TelegramEnabled   bool      `json:"telegramEnabled"`
	TelegramChatID    string    `json:"telegramChatId"`
	SlackEnabled      bool      `json:"slackEnabled"`
	SlackChannelID    string    `json:"slackChannelId"`
	InAppEnabled      bool      `json:"inAppEnabled"`
	SoundEnabled      bool      `json:"soundEnabled"`
	AutoCheckEnabled  bool      `json:"autoCheckEnabled"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toPreferencesResponse(p *model.Preferences) *preferencesResponse {
	return &preferencesResponse{
		UserID:            p.UserID.String(),
		Countries:         p.Countries,
		Cities:            p.Cities,
		CheckFrequencyMin: p.CheckFrequencyMin,
		TelegramEnabled:   p.TelegramEnabled,
		TelegramChatID:    p.TelegramChatID,
		SlackEnabled:      p.SlackEnabled,
		SlackChannelID:    p.SlackChannelID,
		InAppEnabled:      p.InAppEnabled,
		SoundEnabled:      p.SoundEnabled,
		AutoCheckEnabled:  p.AutoCheckEnabled,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (s *Server) getPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("userId query parameter is required"), http.StatusBadRequest)
		return
	}

	prefs, err := s.uc.GetPreferences(ctx, types.UserID(userID))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toPreferencesResponse(prefs))
}

func (s *Server) upsertPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("userId is required"), http.StatusBadRequest)
		return
	}

	// Start from the stored record so omitted fields survive the write.
	base := &model.Preferences{UserID: types.UserID(req.UserID)}
	if existing, err := s.uc.GetPreferences(ctx, types.UserID(req.UserID)); err == nil {
		base = existing
	} else if !errors.Is(err, usecase.ErrPreferencesNotFound) {
		handleError(ctx, w, err)
		return
	}

	req.apply(base)

	stored, err := s.uc.UpsertPreferences(ctx, base)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toPreferencesResponse(stored))
}
