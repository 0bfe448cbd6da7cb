package port

import "errors"

var (
	// ErrNotFound is returned when no request exists for the given id
	ErrNotFound = errors.New("request not found")

	// ErrVersionConflict is returned when a commit's expected version does
	// not match the stored version. The caller must reload and retry.
	ErrVersionConflict = errors.New("version conflict")
)
