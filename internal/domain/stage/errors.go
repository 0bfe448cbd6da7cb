package stage

import "errors"

var (
	// ErrUnknownStage is returned when a stage is not registered
	ErrUnknownStage = errors.New("unknown stage")

	// ErrNoSuchTransition is returned when no registered edge matches the
	// requested decision for the resolved path
	ErrNoSuchTransition = errors.New("no such transition")
)
