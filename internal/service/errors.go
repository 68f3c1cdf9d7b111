package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors the handlers map onto the HTTP taxonomy. Nothing below
// carries internal detail; causes are logged, not returned to callers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("admin authentication not configured")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrContentNotFound    = errors.New("content not found")
	ErrStoreUnavailable   = errors.New("content store unavailable")
)

// ValidationError names every missing or malformed field at once so a
// caller can fix the whole payload in one round trip.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

func newMissingFieldsError(fields []string) *ValidationError {
	return &ValidationError{Message: "missing required fields", Fields: fields}
}
