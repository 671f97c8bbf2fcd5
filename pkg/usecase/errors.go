package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// Not found errors
	ErrPreferencesNotFound = errors.New("preferences not found")

	// Validation errors
	ErrInvalidUserID    = errors.New("user ID must be a well-formed UUID")
	ErrUnknownWatchCode = errors.New("unknown country or city code")
	ErrChannelNotUsable = errors.New("channel is not configured or not supported")
	ErrProviderNotWired = errors.New("availability provider is not configured")
)
