package repository

import (
	"errors"
	"fmt"
)

// Custom error types
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrAPIKeyMissing    = errors.New("API key missing")
	ErrExternalAPI      = errors.New("external API error")
)

// StatusError carries the upstream HTTP status code and the message the
// weather API reported for it, so callers can surface the real failure cause.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrExternalAPI
}
