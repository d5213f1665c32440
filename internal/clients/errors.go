package clients

import "errors"

var (
	// ErrMissingFields is returned when a required field is empty
	ErrMissingFields = errors.New("missing required fields [Smart Lead API/ Calendly Link/ Email]")

	// ErrClientNotFound is returned when no client matches the lookup key
	ErrClientNotFound = errors.New("client not found")

	// ErrDuplicateClient is returned when a unique key already exists
	ErrDuplicateClient = errors.New("client already exists")
)
