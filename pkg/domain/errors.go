package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrEntryNotFound is returned when an expression library has no entry for the requested ID.
var ErrEntryNotFound = errors.New("library entry not found")
