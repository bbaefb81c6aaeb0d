// Package domain holds cross-cutting contracts and sentinel errors.
package domain

import "errors"

var (
	// ErrInvalidQuery signals a missing or empty query text.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrQueryTooLong signals a query exceeding the length limit.
	ErrQueryTooLong = errors.New("query too long")
	// ErrSourceUnavailable signals a per-source fetch failure. Always
	// absorbed by the orchestrator, never surfaced to callers.
	ErrSourceUnavailable = errors.New("source unavailable")
)
