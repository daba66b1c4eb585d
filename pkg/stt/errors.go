package stt

import "errors"

// Sentinel errors for common error conditions.
var (
	// ErrNoAPIKey is returned when the API key is missing.
	ErrNoAPIKey = errors.New("stt: API key required")

	// ErrBadEvent is returned when an upstream frame cannot be parsed as a
	// transcript event. Safe to drop.
	ErrBadEvent = errors.New("stt: unparseable event")

	// ErrStreamClosed is returned when operating on a closed stream.
	ErrStreamClosed = errors.New("stt: stream closed")
)
