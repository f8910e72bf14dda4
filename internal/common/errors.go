// Package common defines shared constants and sentinel errors used across
// the FileTrack client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Auth errors. ErrAuthFailure covers rejected credentials; it is
	// recovered locally and shown as a form error, never retried.
	ErrAuthFailure = errors.New("invalid credentials")

	// ErrSessionExpired marks work aborted because the session ended,
	// either by the inactivity watchdog or by an explicit logout racing
	// an in-flight request.
	ErrSessionExpired = errors.New("session expired")

	// ErrPermissionDenied means the server rejected a mutation. When the
	// local policy allowed it first, that signals client/server policy
	// drift and is worth logging.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation covers input rejected before any network call.
	ErrValidation = errors.New("validation error")

	// ErrTransport covers network failures and unexpected server
	// statuses. Surfaced generically, never retried automatically.
	ErrTransport = errors.New("transport failure")

	// Repository / lookup errors.
	ErrNotFound = errors.New("not found")
)
