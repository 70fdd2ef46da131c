package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned when the backend rejects the stored credential
// or no credential is stored.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRequiredIDsNotFound is returned when a human-readable reference name
// (transport model, package type, status) has no match in the server list.
var ErrRequiredIDsNotFound = errors.New("required IDs not found")

// ErrMalformedTravelTime is returned for travel time strings not shaped as HH:MM:SS.
var ErrMalformedTravelTime = errors.New("malformed travel time")

// ErrBadBackendData marks a backend response that could not be turned into
// view models.
var ErrBadBackendData = errors.New("bad backend data")
