package domain

import "errors"

// Sentinel errors shared across services and the API layer.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoPendingChoice = errors.New("no disambiguation pending for session")
	ErrInvalidChoice   = errors.New("province is not among the offered options")
	ErrRegionsDown     = errors.New("region catalog is unreachable and no cached copy exists")
)
