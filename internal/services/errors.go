package services

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when the shared password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers bad signatures, wrong scope and expired sessions.
	ErrInvalidToken = errors.New("invalid token")
	// ErrPreviewNotFound is returned when no readable preview exists for a key.
	ErrPreviewNotFound = errors.New("preview not found")
	// ErrInvalidCSRFToken is returned when a CSRF token is malformed, expired or forged.
	ErrInvalidCSRFToken = errors.New("invalid csrf token")
)

// ValidationError names the request fields that are missing or invalid. Detail,
// when set, replaces the default "<field> is required" message.
type ValidationError struct {
	Fields []string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.Fields) == 1 {
		return e.Fields[0] + " is required"
	}
	return strings.Join(e.Fields, ", ") + " are required"
}

// Has reports whether field is among the failing fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
