package services

import "errors"

// Engine error taxonomy. Store lookups surface store.ErrNotFound; the
// controllers map each of these to an HTTP status.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAttemptsExhausted = errors.New("no attempts left")
)
