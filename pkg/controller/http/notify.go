package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/usecase"
	"github.com/secmon-lab/argus/pkg/utils/errutil"
)

type testDeliveryRequest struct {
	Channel     string `json:"channel"`
	Token       string `json:"token"`
	Destination string `json:"destination"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// testDelivery sends one ad-hoc message with the credentials from the
// request body so users can verify a channel before enabling it. Nothing
// is persisted.
func (s *Server) testDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req testDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	ch, err := types.ParseChannel(req.Channel)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(usecase.ErrChannelNotUsable, "unknown channel",
			goerr.V("channel", req.Channel)), http.StatusBadRequest)
		return
	}

	if err := s.uc.TestDelivery(ctx, ch, req.Token, req.Destination); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadGateway)
		return
	}

	respondJSON(ctx, w, http.StatusOK, successResponse{Success: true})
}
