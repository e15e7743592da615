package repository

import "errors"

// ErrNotFound is returned when a row does not exist. Callers that enforce
// ownership rely on it to fold "missing" and "foreign" into one negative.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned on a duplicate user email.
var ErrEmailTaken = errors.New("email already registered")
