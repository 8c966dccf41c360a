package store

import "errors"

var (
	// ErrSuperseded is returned by a load whose result was discarded because a newer
	// load started or the store was reset while it was in flight
	ErrSuperseded = errors.New("store: superseded by a newer request")

	ErrNoJobSelected = errors.New("store: no job selected")

	// ErrInvalidTransition is returned when a workflow call does not apply to the current phase
	ErrInvalidTransition = errors.New("store: invalid transition")

	ErrPersistence = errors.New("store: persistence failure")
)
