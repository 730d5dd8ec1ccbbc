package errors

import "errors"

var (
	ErrNotConfigured       = errors.New("order system not configured")
	ErrUnauthorized        = errors.New("actor is not authorized")
	ErrUnknownStatus       = errors.New("unknown status")
	ErrOrderNotFound       = errors.New("order not found")
	ErrMentionMissing      = errors.New("no user mentioned")
	ErrPlatformUnavailable = errors.New("chat platform unavailable")
)
