package storage

import "errors"

// Common storage errors
var (
	// ErrDuplicateEvent indicates that an event with the same (deviceId, id) key
	// is already in the log. The log is left unchanged.
	ErrDuplicateEvent = errors.New("event already in log")

	// ErrMetadataNotFound indicates that a metadata key was never saved
	ErrMetadataNotFound = errors.New("metadata not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
