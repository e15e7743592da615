package service

import "errors"

// ErrAccessDenied covers both "does not exist" and "exists but is not yours".
// The two are deliberately indistinguishable so non-owners cannot probe for
// resource existence.
var ErrAccessDenied = errors.New("resource not found or access denied")

// ErrInvalidCredentials is returned for any login failure, wrong email and
// wrong password alike.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError carries field-level messages the client can render inline.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}
