package helpers

import "errors"

// ErrEndpointNotFound is returned whenever a token or id does not resolve to
// a registered endpoint. Ingestion never auto-creates endpoints.
var ErrEndpointNotFound = errors.New("The endpoint was not found.")

// ValidationError marks malformed caller input. It always maps to HTTP 400.
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// ConflictError marks a uniqueness violation on endpoint creation.
type ConflictError struct {
	msg string
}

func NewConflictError(msg string) *ConflictError {
	return &ConflictError{msg: msg}
}

func (e *ConflictError) Error() string {
	return e.msg
}
