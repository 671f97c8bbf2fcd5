package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/secmon-lab/argus/pkg/usecase"
	"github.com/secmon-lab/argus/pkg/utils/errutil"
	"github.com/secmon-lab/argus/pkg/utils/logging"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(ctx).Error("failed to encode response", "error", err)
	}
}

// handleError maps use case errors onto HTTP status codes and delegates
// logging and the response body to errutil.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID),
		errors.Is(err, usecase.ErrUnknownWatchCode),
		errors.Is(err, usecase.ErrChannelNotUsable):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrPreferencesNotFound):
		status = http.StatusNotFound
	}

	errutil.HandleHTTP(ctx, w, err, status)
}
