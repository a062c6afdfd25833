package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, unknown item type).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a mutation would destroy curated state, most
// notably regenerating the day timeline while any Day still holds line items.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")

// ErrUpstream is returned when an external collaborator (the planning
// service or the catalog) fails or returns unusable output. The core never
// retries it; handlers should map it to HTTP 502 Bad Gateway.
var ErrUpstream = errors.New("upstream error")
