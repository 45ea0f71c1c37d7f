package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. value outside 0-100, name too long).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when an authenticated user attempts an operation
// on a resource they do not own (e.g. deleting someone else's submission).
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")
