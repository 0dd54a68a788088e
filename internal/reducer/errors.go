package reducer

import "errors"

// Reducer errors
var (
	// ErrUnregistered indicates an event type without a reducer. Replay must be
	// exhaustive, so this is fatal for the log being replayed.
	ErrUnregistered = errors.New("no reducer registered for event type")

	// ErrAlreadyRegistered indicates a second registration for the same type
	ErrAlreadyRegistered = errors.New("reducer already registered")

	// ErrValidation indicates a malformed event or payload
	ErrValidation = errors.New("event validation failed")

	// ErrNotFound indicates that a referenced entity does not exist
	ErrNotFound = errors.New("referenced entity not found")

	// ErrAlreadyExists indicates a create event for an existing entity
	ErrAlreadyExists = errors.New("entity already exists")
)

// IsValidation reports whether err is an expected, recoverable reducer failure
// (as opposed to a fatal registry gap).
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists)
}
