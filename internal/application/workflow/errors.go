package workflow

import "errors"

var (
	// ErrAlreadyTerminal is returned when a transition is attempted on a
	// completed or rejected request
	ErrAlreadyTerminal = errors.New("request is in a terminal stage")

	// ErrInvalidDecision is returned when the decision is neither approve
	// nor reject
	ErrInvalidDecision = errors.New("invalid decision")
)
